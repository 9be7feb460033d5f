package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/parkmoor/clubhouse/internal/portal/domain"
)

// ErrInvalidToken reports a cookie token that failed signature or
// structural validation.
var ErrInvalidToken = errors.New("session: invalid token")

// TokenManager mints and verifies the signed cookie tokens that
// reference server-side sessions. The token is HS256-signed with the
// session secret; it carries the session id and expiry but no
// authorization state, so possession alone proves nothing once the
// server-side record is gone.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

type tokenClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Mint signs a token for the given session, expiring with it.
func (m *TokenManager) Mint(s domain.Session) (string, error) {
	claims := tokenClaims{
		SessionID: s.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("session: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the referenced
// session id. The caller still has to look the session up server-side.
func (m *TokenManager) Verify(raw string) (string, error) {
	var claims tokenClaims

	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.SessionID == "" {
		return "", ErrInvalidToken
	}

	return claims.SessionID, nil
}
