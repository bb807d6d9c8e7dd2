package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProbe() (*http.Request, *httptest.ResponseRecorder, http.Handler, *struct {
	called    bool
	principal *Principal
}) {
	state := &struct {
		called    bool
		principal *Principal
	}{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state.called = true
		if p, ok := PrincipalFromContext(r.Context()); ok {
			state.principal = p
		}
		w.WriteHeader(http.StatusOK)
	})
	return httptest.NewRequest(http.MethodGet, "/users/1", nil), httptest.NewRecorder(), next, state
}

func TestMiddleware_PublicPathSkipsAuthentication(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator(NewTokenService("k", time.Hour), []string{"/auth/login"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set("Authorization", "Bearer complete-garbage")
	rec := httptest.NewRecorder()

	_, _, next, state := newProbe()
	a.Middleware(next).ServeHTTP(rec, req)

	assert.True(t, state.called)
	assert.Nil(t, state.principal)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_NoHeaderStaysAnonymous(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator(NewTokenService("k", time.Hour), nil)
	req, rec, next, state := newProbe()

	a.Middleware(next).ServeHTTP(rec, req)

	assert.True(t, state.called)
	assert.Nil(t, state.principal)
}

func TestMiddleware_MalformedSchemeStaysAnonymous(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator(NewTokenService("k", time.Hour), nil)
	req, rec, next, state := newProbe()
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	a.Middleware(next).ServeHTTP(rec, req)

	assert.True(t, state.called)
	assert.Nil(t, state.principal)
}

func TestMiddleware_InvalidTokenFailsOpenToAnonymous(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator(NewTokenService("k", time.Hour), nil)
	req, rec, next, state := newProbe()
	req.Header.Set("Authorization", "Bearer not.a.jwt")

	a.Middleware(next).ServeHTTP(rec, req)

	// Never a 401 from the authenticator itself.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, state.called)
	assert.Nil(t, state.principal)
}

func TestMiddleware_ValidTokenAttachesPrincipal(t *testing.T) {
	t.Parallel()

	tokens := NewTokenService("k", time.Hour)
	a := NewAuthenticator(tokens, nil)

	tok, err := tokens.Issue(42, "ann@x.com", false)
	require.NoError(t, err)

	req, rec, next, state := newProbe()
	req.Header.Set("Authorization", "Bearer "+tok)

	a.Middleware(next).ServeHTTP(rec, req)

	require.NotNil(t, state.principal)
	assert.Equal(t, int64(42), state.principal.UserID)
	assert.Equal(t, "ann@x.com", state.principal.Email)
	assert.Equal(t, RoleUser, state.principal.Role)
	assert.False(t, state.principal.IsAdmin)
}

func TestMiddleware_AdminFlagYieldsAdminRole(t *testing.T) {
	t.Parallel()

	tokens := NewTokenService("k", time.Hour)
	a := NewAuthenticator(tokens, nil)

	tok, err := tokens.Issue(1, "root@x.com", true)
	require.NoError(t, err)

	req, rec, next, state := newProbe()
	req.Header.Set("Authorization", "Bearer "+tok)

	a.Middleware(next).ServeHTTP(rec, req)

	require.NotNil(t, state.principal)
	assert.Equal(t, RoleAdmin, state.principal.Role)
}

func TestIsPublic_WildcardPrefix(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator(NewTokenService("k", time.Hour), []string{"/health", "/docs/*"})

	assert.True(t, a.isPublic("/health"))
	assert.True(t, a.isPublic("/docs/openapi.json"))
	assert.False(t, a.isPublic("/users"))
	assert.False(t, a.isPublic("/healthz"))
}
