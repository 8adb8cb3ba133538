package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidOperatorToken is returned for operator JWTs that fail to parse,
// verify, or that have expired.
var ErrInvalidOperatorToken = errors.New("invalid operator token")

// OperatorAuth issues and validates the HS256 JWTs that guard the admin
// endpoints (dataset reload). These are separate from the public opaque
// access tokens: operator tokens are minted offline via the CLI with a
// shared secret, not issued by the API.
type OperatorAuth struct {
	secret []byte
}

// NewOperatorAuth creates an OperatorAuth with the given shared secret.
func NewOperatorAuth(secret string) *OperatorAuth {
	return &OperatorAuth{secret: []byte(secret)}
}

// Issue creates a signed operator token for the given subject.
func (o *OperatorAuth) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    "neis",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(o.secret)
}

// Validate verifies an operator token and returns its subject.
func (o *OperatorAuth) Validate(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return o.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidOperatorToken
	}
	return claims.Subject, nil
}
