// Package jwtx is the single authority on token authenticity. It encodes and
// decodes compact HS256-signed tokens carrying a subject, an issue/expiry
// window, and a token kind. One process-wide secret signs everything; the
// secret is loaded at start-up and rotating it requires a restart.
package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token lifetimes. Access tokens stay short so a leaked bearer string
// ages out quickly; refresh tokens live longer for sign-in convenience.
const (
	DefaultAccessTokenTTL  = 1 * time.Hour
	DefaultRefreshTokenTTL = 72 * time.Hour
)

// TokenKind distinguishes the two token roles. A refresh token can never be
// presented where an access token is expected, and vice versa.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Known reports whether k is one of the kinds this codec issues.
func (k TokenKind) Known() bool {
	return k == KindAccess || k == KindRefresh
}

// Claims is the signed token payload. Roles travel inside the token so the
// request pipeline can rebuild the caller's identity without a store lookup.
type Claims struct {
	jwt.RegisteredClaims

	Kind  TokenKind `json:"kind"`
	Roles []string  `json:"roles,omitempty"`
}

// NewClaims builds a claim set for subject with the given kind and lifetime.
func NewClaims(
	subject string,
	kind TokenKind,
	roles []string,
	issuer string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Kind:  kind,
		Roles: roles,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer claim against the expected value.
// Empty expected means nothing to enforce.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}
