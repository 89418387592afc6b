package handler

import (
	"log/slog"
	"net/http"

	"github.com/dontbanhemp/action-server/internal/service"
)

// SendHandler delivers a finalized advocacy email.
type SendHandler struct {
	dispatch *service.DispatchService
	logger   *slog.Logger
}

// NewSendHandler creates a SendHandler.
func NewSendHandler(dispatch *service.DispatchService, logger *slog.Logger) *SendHandler {
	return &SendHandler{dispatch: dispatch, logger: logger}
}

// HandleSend sends the (possibly edited) email to a lawmaker's office.
//
// HTTP: POST /api/send
// REQUEST BODY:
//
//	{"userId": "...", "lawmakerId": "...",
//	 "emailSubject": "...", "emailBody": "..."}
//
// RESPONSE: {"success": true, "messageId": "..."}
//
// The subject and body arrive as the visitor left them — edits to the
// generated draft are sent verbatim and logged verbatim.
func (h *SendHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID       string `json:"userId"`
		LawmakerID   string `json:"lawmakerId"`
		EmailSubject string `json:"emailSubject"`
		EmailBody    string `json:"emailBody"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	messageID, err := h.dispatch.Send(r.Context(), req.UserID, req.LawmakerID, req.EmailSubject, req.EmailBody)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"messageId": messageID,
	})
}
