package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dcamposl/resilient-auth/internal/apperrors"
)

// Claims defines the JWT claims structure. The email travels in the standard
// subject claim.
type Claims struct {
	UserID  int64 `json:"userId"`
	IsAdmin bool  `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Email returns the claimed email address.
func (c *Claims) Email() string { return c.Subject }

// TokenService signs and verifies the compact tokens the API hands out.
// Tokens are self-contained; nothing is kept server-side.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing with the given symmetric
// secret and issuing tokens valid for ttl.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token for the given identity, valid from now until
// now plus the configured TTL.
func (s *TokenService) Issue(userID int64, email string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses the token, checks its signature and expiry, and returns the
// embedded claims. Expiry is reported as TOKEN_EXPIRED; every other parse or
// signature problem is TOKEN_INVALID.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Business(apperrors.TokenExpired)
		}
		return nil, apperrors.Business(apperrors.TokenInvalid)
	}
	if !token.Valid {
		return nil, apperrors.Business(apperrors.TokenInvalid)
	}
	return claims, nil
}
