package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dontbanhemp/action-server/internal/auth"
	"github.com/dontbanhemp/action-server/internal/model"
	"github.com/dontbanhemp/action-server/internal/repository"
	"github.com/dontbanhemp/action-server/internal/service"
)

// AdminHandler serves the staff curation API: operator login and lawmaker
// stance/funding/quote updates. The server only registers these routes when
// an operator credential is configured.
type AdminHandler struct {
	adminEmail   string
	passwordHash string
	passwords    *auth.PasswordService
	tokens       *auth.TokenService
	curation     *service.CurationService
	logger       *slog.Logger
}

// NewAdminHandler creates an AdminHandler. adminEmail and passwordHash come
// from configuration; the hash is bcrypt, produced offline.
func NewAdminHandler(
	adminEmail, passwordHash string,
	passwords *auth.PasswordService,
	tokens *auth.TokenService,
	curation *service.CurationService,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		adminEmail:   adminEmail,
		passwordHash: passwordHash,
		passwords:    passwords,
		tokens:       tokens,
		curation:     curation,
		logger:       logger,
	}
}

// HandleLogin exchanges the operator credential for a bearer token.
//
// HTTP: POST /api/admin/login
// REQUEST BODY: {"email": "...", "password": "..."}
// RESPONSE: {"token": "<jwt>"}
//
// Wrong email and wrong password return the same 401 — no hint about which
// half was wrong.
func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.Email != h.adminEmail || h.passwords.Verify(h.passwordHash, req.Password) != nil {
		h.logger.Warn("failed admin login attempt", slog.String("email", req.Email))
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "invalid credentials",
		})
		return
	}

	token, err := h.tokens.Generate(req.Email)
	if err != nil {
		h.logger.Error("token generation failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// HandleUpdateLawmaker applies a partial curation update.
//
// HTTP: PATCH /api/admin/lawmakers/{id}
// Auth: Required (bearer token from HandleLogin)
// REQUEST BODY (all fields optional):
//
//	{"hempStance": "champion", "alcoholFundingTotal": 125000.50,
//	 "alcoholFundingCycle": "2024", "keyQuote": "...",
//	 "quoteSourceUrl": "...", "featured": true}
//
// Absent fields are left unchanged; the JSON pointer fields map directly to
// the repository's partial-update semantics.
func (h *AdminHandler) HandleUpdateLawmaker(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		HempStance          *model.Stance `json:"hempStance"`
		AlcoholFundingTotal *float64      `json:"alcoholFundingTotal"`
		AlcoholFundingCycle *string       `json:"alcoholFundingCycle"`
		KeyQuote            *string       `json:"keyQuote"`
		QuoteSourceURL      *string       `json:"quoteSourceUrl"`
		Featured            *bool         `json:"featured"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	operator, _ := auth.SubjectFromContext(r.Context())

	lawmaker, err := h.curation.Update(r.Context(), id, repository.CurationUpdate{
		HempStance:          req.HempStance,
		AlcoholFundingTotal: req.AlcoholFundingTotal,
		AlcoholFundingCycle: req.AlcoholFundingCycle,
		KeyQuote:            req.KeyQuote,
		QuoteSourceURL:      req.QuoteSourceURL,
		Featured:            req.Featured,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("lawmaker curated",
		slog.String("id", id),
		slog.String("operator", operator),
	)
	writeJSON(w, http.StatusOK, lawmaker)
}
