package handler

import (
	"log/slog"
	"net/http"

	"github.com/dontbanhemp/action-server/internal/model"
	"github.com/dontbanhemp/action-server/internal/service"
)

// TemplateHandler renders pre-drafted advocacy emails.
type TemplateHandler struct {
	templates *service.TemplateService
	logger    *slog.Logger
}

// NewTemplateHandler creates a TemplateHandler.
func NewTemplateHandler(templates *service.TemplateService, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{templates: templates, logger: logger}
}

// HandleRender returns the draft subject and body for one role and one
// lawmaker.
//
// HTTP: POST /api/template
// REQUEST BODY: {"role": "veteran", "lawmakerId": "...", "name": "Jane Doe"}
// RESPONSE: {"subject": "...", "body": "..."}
//
// Rendering is deterministic, so the frontend can call this as often as it
// likes — switching roles in the modal just re-requests the draft.
func (h *TemplateHandler) HandleRender(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role       model.Role `json:"role"`
		LawmakerID string     `json:"lawmakerId"`
		Name       string     `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	tmpl, err := h.templates.Render(r.Context(), req.Role, req.LawmakerID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tmpl)
}
