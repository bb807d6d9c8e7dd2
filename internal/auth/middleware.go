package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

const bearerPrefix = "Bearer "

// Roles derived from the admin flag. There is exactly one role per
// principal.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Principal is the authenticated identity attached to a request context
// after successful token verification.
type Principal struct {
	UserID  int64
	Email   string
	IsAdmin bool
	Role    string
}

type contextKey string

const principalContextKey = contextKey("authPrincipal")

// PrincipalFromContext returns the authenticated principal, if the request
// carried a valid token.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(*Principal)
	return p, ok
}

// ContextWithPrincipal attaches a principal to the context, the same way the
// middleware does for verified tokens. Useful for collaborators that
// authenticate outside the HTTP boundary.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// TokenVerifier verifies a compact token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// Authenticator is the request-authentication middleware. It attaches an
// identity when a valid bearer token is presented and otherwise lets the
// request continue anonymously; rejecting anonymous requests is the job of
// the authorization guards downstream.
type Authenticator struct {
	verifier    TokenVerifier
	publicPaths []string
}

// NewAuthenticator creates an Authenticator. Entries in publicPaths match
// exactly, or by prefix when they end with "*".
func NewAuthenticator(verifier TokenVerifier, publicPaths []string) *Authenticator {
	return &Authenticator{verifier: verifier, publicPaths: publicPaths}
}

// Middleware authenticates the request if possible. Verification failures
// are swallowed: a garbage token leaves the request anonymous rather than
// producing an error response.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := a.verifier.Verify(strings.TrimPrefix(authHeader, bearerPrefix))
		if err != nil {
			log.Debug().Err(err).Str("path", r.URL.Path).Msg("Discarding unverifiable bearer token")
			next.ServeHTTP(w, r)
			return
		}

		role := RoleUser
		if claims.IsAdmin {
			role = RoleAdmin
		}
		principal := &Principal{
			UserID:  claims.UserID,
			Email:   claims.Email(),
			IsAdmin: claims.IsAdmin,
			Role:    role,
		}

		next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
	})
}

func (a *Authenticator) isPublic(path string) bool {
	for _, p := range a.publicPaths {
		if strings.HasSuffix(p, "*") {
			if strings.HasPrefix(path, strings.TrimSuffix(p, "*")) {
				return true
			}
			continue
		}
		if path == p {
			return true
		}
	}
	return false
}
