package handler

import (
	"log/slog"
	"net/http"

	"github.com/dontbanhemp/action-server/internal/service"
)

// LookupHandler resolves a visitor's zip code to their congressional
// delegation.
type LookupHandler struct {
	lookups *service.LookupService
	logger  *slog.Logger
}

// NewLookupHandler creates a LookupHandler.
func NewLookupHandler(lookups *service.LookupService, logger *slog.Logger) *LookupHandler {
	return &LookupHandler{lookups: lookups, logger: logger}
}

// HandleLookup returns the senators and representative for a zip code.
//
// HTTP: POST /api/lookup
// REQUEST BODY: {"zipCode": "90210"}
//
// This is a POST despite being a read: it triggers provider traffic and a
// reconciliation write, and we don't want intermediaries caching or
// pre-fetching it.
func (h *LookupHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ZipCode string `json:"zipCode"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.lookups.Lookup(r.Context(), req.ZipCode)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
