// Package auth issues and verifies the HS256 JWTs that protect the HTTP API.
// This is a leaf package with no domain dependencies. Used by the token command and internal/api/middleware.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultJWTExpiry is used when an Issuer is created with a zero expiry.
const DefaultJWTExpiry = 24 * time.Hour

// MinSecretLength is the shortest accepted HMAC secret.
const MinSecretLength = 16

const issuerName = "peoplebridge"

var (
	ErrSecretTooShort = fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLength)
	ErrEmptySubject   = errors.New("jwt subject is required")
	ErrEmptyToken     = errors.New("token is empty")
)

// Claims are the registered claims plus the caller's display name.
// Subject identifies the caller in audit records.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies tokens with one shared secret.
type Issuer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer. expiry <= 0 selects DefaultJWTExpiry.
func NewIssuer(secret string, expiry time.Duration) (*Issuer, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	if expiry <= 0 {
		expiry = DefaultJWTExpiry
	}
	return &Issuer{secret: []byte(secret), expiry: expiry, now: time.Now}, nil
}

// GenerateJWT creates a signed token for subject.
func (i *Issuer) GenerateJWT(subject, name string) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", ErrEmptySubject
	}

	now := i.now()
	claims := &Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuerName,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}

	return signedToken, nil
}

// ParseJWT validates a token and returns its claims.
// Only HS256 tokens from this issuer with a subject are accepted.
func (i *Issuer) ParseJWT(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrEmptyToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuerName),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT claims or signature")
	}
	if claims.Subject == "" {
		return nil, ErrEmptySubject
	}

	return claims, nil
}
