package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLen is the smallest signing secret we accept. HMAC-SHA256 gives
// its full strength with a 32-byte key; shorter secrets invite brute force.
const MinSecretLen = 32

// Signer turns a claim set into a signed compact token string.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HS256Signer signs tokens with a symmetric HMAC-SHA256 secret.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 creates a signer for the process-wide secret.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretLen {
		return nil, errors.New("jwtx: signing secret must be at least 32 bytes")
	}
	return &HS256Signer{secret: secret}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign serializes claims and computes the HMAC over them.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
