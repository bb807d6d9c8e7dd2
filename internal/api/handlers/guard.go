package handlers

import (
	"net/http"

	"github.com/dcamposl/resilient-auth/internal/apperrors"
	"github.com/dcamposl/resilient-auth/internal/auth"
)

// RequireAuth rejects requests that did not authenticate. The authenticator
// middleware never blocks by itself, so routes that need an identity opt in
// through this guard.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.PrincipalFromContext(r.Context()); !ok {
			WriteFailure(w, MessageID(r), apperrors.TokenMissing)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose principal does not carry the admin
// role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := auth.PrincipalFromContext(r.Context())
		if !ok {
			WriteFailure(w, MessageID(r), apperrors.TokenMissing)
			return
		}
		if principal.Role != auth.RoleAdmin {
			WriteFailure(w, MessageID(r), apperrors.Unauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
