package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims carries nothing but the server-side session id (jti)
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SessionSigner signs and verifies session tokens. The token is the opaque
// value handed to the browser; the session itself lives on the server.
type SessionSigner struct {
	secretKey string
	ttl       time.Duration
}

// NewSessionSigner creates a new SessionSigner
func NewSessionSigner(secretKey string, ttl time.Duration) *SessionSigner {
	return &SessionSigner{secretKey: secretKey, ttl: ttl}
}

// TTL returns the lifetime of issued tokens
func (s *SessionSigner) TTL() time.Duration {
	return s.ttl
}

// Sign issues a token for sessionID expiring at expiresAt
func (s *SessionSigner) Sign(sessionID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify validates the token and returns the session id it carries
func (s *SessionSigner) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.ID == "" {
		return "", errors.New("token carries no session id")
	}
	return claims.ID, nil
}
