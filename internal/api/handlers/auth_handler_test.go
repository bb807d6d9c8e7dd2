package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcamposl/resilient-auth/internal/apperrors"
	"github.com/dcamposl/resilient-auth/internal/auth"
	"github.com/dcamposl/resilient-auth/internal/services"
)

type fakeAuthService struct {
	loginResult *services.LoginResult
	loginErr    error
	gotEmail    string
	gotPassword string
}

func (f *fakeAuthService) Login(_ context.Context, email, password, _ string) (*services.LoginResult, error) {
	f.gotEmail, f.gotPassword = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func (f *fakeAuthService) ValidateToken(string) (*auth.Claims, error) {
	return nil, apperrors.Business(apperrors.TokenInvalid)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	svc := &fakeAuthService{loginResult: &services.LoginResult{
		Token: "signed-token", UserID: 42, Email: "ann@x.com", IsAdmin: true,
	}}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"ann@x.com","password":"p1"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "signed-token", body.Token)
	assert.Equal(t, int64(42), body.UserID)
	assert.Equal(t, "ann@x.com", body.Email)
	assert.True(t, body.IsAdmin)
	assert.Equal(t, "p1", svc.gotPassword)
}

func TestLogin_InvalidCredentialsEnvelope(t *testing.T) {
	t.Parallel()

	svc := &fakeAuthService{loginErr: apperrors.Business(apperrors.InvalidCredentials)}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"ann@x.com","password":"wrong"}`))
	req.Header.Set("X-Message-Id", "corr-123")
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "401", body.Code)
	assert.Equal(t, "corr-123", body.Identifier)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "Invalid email or password", body.Errors[0].Message)
	assert.Equal(t, "credentials", body.Errors[0].Param)
}

func TestLogin_TechnicalFailureIsGeneric(t *testing.T) {
	t.Parallel()

	svc := &fakeAuthService{loginErr: apperrors.Technical(apperrors.InternalError, assert.AnError)}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"ann@x.com","password":"p1"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "500", body.Code)
	// The cause stays in the logs.
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestLogin_MalformedBody(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&fakeAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe_ReturnsPrincipal(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&fakeAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(auth.ContextWithPrincipal(req.Context(), &auth.Principal{
		UserID: 42, Email: "ann@x.com", IsAdmin: false, Role: auth.RoleUser,
	}))
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ann@x.com", body["email"])
	assert.Equal(t, "user", body["role"])
}
