package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/dcamposl/resilient-auth/internal/apperrors"
	"github.com/dcamposl/resilient-auth/internal/auth"
	"github.com/dcamposl/resilient-auth/internal/services"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service services.AuthServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the claims it asserts.
type LoginResponse struct {
	Token   string `json:"token"`
	UserID  int64  `json:"userId"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// Login authenticates credentials and returns a signed token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	messageID := MessageID(r)

	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteFailure(w, messageID, apperrors.InvalidRequest)
		return
	}

	result, err := h.service.Login(r.Context(), payload.Email, payload.Password, messageID)
	if err != nil {
		log.Warn().Err(err).Str("message_id", messageID).Msg("Login rejected")
		WriteError(w, messageID, err)
		return
	}

	WriteJSON(w, http.StatusOK, LoginResponse{
		Token:   result.Token,
		UserID:  result.UserID,
		Email:   result.Email,
		IsAdmin: result.IsAdmin,
	})
}

// Me returns the principal the request authenticated as.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	messageID := MessageID(r)

	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		WriteFailure(w, messageID, apperrors.TokenMissing)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"userId":  principal.UserID,
		"email":   principal.Email,
		"isAdmin": principal.IsAdmin,
		"role":    principal.Role,
	})
}
