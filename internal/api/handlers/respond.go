package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dcamposl/resilient-auth/internal/apperrors"
)

// messageIDHeader carries the caller-supplied correlation identifier.
const messageIDHeader = "X-Message-Id"

// ErrorDTO is one failure record in an error response.
type ErrorDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

// APIResponse is the uniform envelope for rejected operations.
type APIResponse struct {
	Code       string     `json:"code"`
	Message    string     `json:"message"`
	Identifier string     `json:"identifier,omitempty"`
	Date       string     `json:"date"`
	Errors     []ErrorDTO `json:"errors,omitempty"`
}

// MessageID returns the request's correlation identifier: the X-Message-Id
// header when present, the router's request id otherwise, or a fresh uuid as
// a last resort.
func MessageID(r *http.Request) string {
	if id := r.Header.Get(messageIDHeader); id != "" {
		return id
	}
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
	}
}

// WriteError classifies err and writes the matching failure envelope.
// Business failures surface their specific catalog entry; technical and
// unexpected failures surface a generic internal error, with the cause kept
// in the logs only.
func WriteError(w http.ResponseWriter, messageID string, err error) {
	appErr := apperrors.Classify(err)
	msg := appErr.Message
	if appErr.Kind != apperrors.KindBusiness {
		log.Error().Err(err).Str("message_id", messageID).Msg("Request failed")
		msg = apperrors.InternalError
	}

	WriteJSON(w, statusFor(msg), APIResponse{
		Code:       msg.Code,
		Message:    msg.Text,
		Identifier: messageID,
		Date:       time.Now().UTC().Format(time.RFC3339),
		Errors: []ErrorDTO{{
			Code:    msg.Code,
			Message: msg.Text,
			Param:   msg.Param,
		}},
	})
}

// WriteFailure writes the failure envelope for a known catalog entry without
// going through classification.
func WriteFailure(w http.ResponseWriter, messageID string, msg apperrors.Message) {
	WriteError(w, messageID, apperrors.Business(msg))
}

// statusFor derives the HTTP status from the catalog entry's own code.
func statusFor(m apperrors.Message) int {
	if n, err := strconv.Atoi(m.Code); err == nil && n >= 100 && n < 600 {
		return n
	}
	return http.StatusInternalServerError
}
