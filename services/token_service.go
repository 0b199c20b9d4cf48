// services/token_service.go
package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is how long an issued credential stays valid.
const TokenTTL = 24 * time.Hour

// TokenService issues and verifies the self-contained bearer tokens handed to
// the game client. The signing secret is injected once at startup — nothing
// here reads ambient state, and there is no revocation list.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

type userClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// Sign issues a fresh token bound to the user id.
func (s *TokenService) Sign(userID uint) (string, error) {
	now := time.Now()
	claims := userClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify returns the user id baked into a token. Missing, malformed and
// expired tokens all collapse to ErrTokenInvalid — callers cannot tell them
// apart.
func (s *TokenService) Verify(token string) (uint, error) {
	parsed, err := jwt.ParseWithClaims(token, &userClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return 0, ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(*userClaims)
	if !ok || claims.UserID == 0 {
		return 0, ErrTokenInvalid
	}
	return claims.UserID, nil
}
