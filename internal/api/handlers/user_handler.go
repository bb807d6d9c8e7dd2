package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/dcamposl/resilient-auth/internal/apperrors"
	"github.com/dcamposl/resilient-auth/internal/models"
	"github.com/dcamposl/resilient-auth/internal/services"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterPayload defines the structure for registration requests. IsAdmin
// is a pointer so that an omitted flag is distinguishable from false.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  *bool  `json:"isAdmin"`
}

// UserView is the outward representation of a user. The password never
// appears here.
type UserView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// IDsPayload carries the id list for the bulk endpoints.
type IDsPayload struct {
	IDs []int64 `json:"ids"`
}

func toUserView(u *models.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.Admin()}
}

// Create handles new user registration.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	messageID := MessageID(r)

	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteFailure(w, messageID, apperrors.InvalidRequest)
		return
	}

	user := &models.User{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		IsAdmin:  payload.IsAdmin,
	}

	saved, err := h.service.Register(r.Context(), user, messageID)
	if err != nil {
		log.Warn().Err(err).Str("message_id", messageID).Msg("Registration rejected")
		WriteError(w, messageID, err)
		return
	}

	WriteJSON(w, http.StatusCreated, toUserView(saved))
}

// Get handles retrieving a user by their id.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	messageID := MessageID(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteFailure(w, messageID, apperrors.UserIDRequired)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id, messageID)
	if err != nil {
		WriteError(w, messageID, err)
		return
	}

	WriteJSON(w, http.StatusOK, toUserView(user))
}

// CheckExists maps each requested id to whether that user exists.
func (h *UserHandler) CheckExists(w http.ResponseWriter, r *http.Request) {
	messageID := MessageID(r)

	var payload IDsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteFailure(w, messageID, apperrors.InvalidRequest)
		return
	}

	result, err := h.service.CheckUsersExist(r.Context(), payload.IDs, messageID)
	if err != nil {
		WriteError(w, messageID, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// GetByIDs returns the user views for the requested ids.
func (h *UserHandler) GetByIDs(w http.ResponseWriter, r *http.Request) {
	messageID := MessageID(r)

	var payload IDsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteFailure(w, messageID, apperrors.InvalidRequest)
		return
	}

	users, err := h.service.GetUsersByIDs(r.Context(), payload.IDs, messageID)
	if err != nil {
		WriteError(w, messageID, err)
		return
	}

	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}
	WriteJSON(w, http.StatusOK, views)
}
