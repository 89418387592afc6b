package handler

import (
	"log/slog"
	"net/http"

	"github.com/dontbanhemp/action-server/internal/model"
	"github.com/dontbanhemp/action-server/internal/service"
)

// UserHandler manages campaign participant registration.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleCreate registers a participant.
//
// HTTP: POST /api/users
// REQUEST BODY:
//
//	{"email": "jane@example.com", "zipCode": "90210", "role": "consumer",
//	 "name": "Jane Doe", "storyOptIn": true}
//
// Registration is idempotent — a known email returns the existing user,
// never an error. The visitor filling in the form twice is an expected
// flow, not a conflict.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email             string     `json:"email"`
		ZipCode           string     `json:"zipCode"`
		Role              model.Role `json:"role"`
		Name              string     `json:"name"`
		Phone             string     `json:"phone"`
		BusinessName      string     `json:"businessName"`
		StoryOptIn        bool       `json:"storyOptIn"`
		WeeklyDigestOptIn bool       `json:"weeklyDigestOptIn"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Create(r.Context(), service.CreateUserParams{
		Email:             req.Email,
		ZipCode:           req.ZipCode,
		Role:              req.Role,
		Name:              req.Name,
		Phone:             req.Phone,
		BusinessName:      req.BusinessName,
		StoryOptIn:        req.StoryOptIn,
		WeeklyDigestOptIn: req.WeeklyDigestOptIn,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}
