// Package auth authenticates ledger callers. Buyers present HS256 bearer
// tokens whose subject is their identity; the organizer's initialize call
// is gated by an admin key stored as a bcrypt hash.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/farellandr/liveticket/internal/models"
)

const issuer = "liveticket"

var ErrMissingSecret = errors.New("auth: signing secret not configured")

// IssueToken signs a token asserting identity for ttl starting at now.
func IssueToken(secret []byte, identity models.Identity, ttl time.Duration, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   identity.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates tokenString and returns the identity it asserts.
func ParseToken(secret []byte, tokenString string) (models.Identity, error) {
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	return models.ParseIdentity(claims.Subject)
}
