package jwtx

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformed covers structurally broken tokens: wrong segment count,
	// undecodable payload, wrong claim shape, unknown kind. Raised before any
	// signature work so garbage input never reaches the HMAC path.
	ErrMalformed = errors.New("jwtx: malformed token")

	// ErrInvalidSig means the HMAC over the claims does not match: the token
	// was tampered with or signed with a different secret.
	ErrInvalidSig = errors.New("jwtx: invalid signature")

	// ErrExpired means the token was authentic but its expiry has passed.
	ErrExpired = errors.New("jwtx: token expired")

	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrWrongKind    = errors.New("jwtx: wrong token kind")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// Verifier validates a compact token string and returns the claims when it is
// authentic and unexpired.
type Verifier interface {
	Verify(token string) (Claims, error)
	VerifyKind(token string, kind TokenKind) (Claims, error)
}

// HS256Verifier validates tokens signed with the shared HMAC secret.
type HS256Verifier struct {
	secret []byte
	issuer string
}

// NewVerifierHS256 creates a verifier bound to the signing secret and, when
// issuer is non-empty, an expected issuer claim.
func NewVerifierHS256(secret []byte, issuer string) (*HS256Verifier, error) {
	if len(secret) < MinSecretLen {
		return nil, errors.New("jwtx: signing secret must be at least 32 bytes")
	}
	return &HS256Verifier{secret: secret, issuer: issuer}, nil
}

// Verify decodes, checks structure, verifies the signature, and validates the
// time window, in that order. The error identifies exactly one failure class.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	if err := checkShape(tokenStr); err != nil {
		return Claims{}, err
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidClaim
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

// VerifyKind is Verify plus an expected-kind check. The request pipeline uses
// it with KindAccess; the refresh flow with KindRefresh.
func (v *HS256Verifier) VerifyKind(tokenStr string, kind TokenKind) (Claims, error) {
	claims, err := v.Verify(tokenStr)
	if err != nil {
		return Claims{}, err
	}
	if claims.Kind != kind {
		return Claims{}, ErrWrongKind
	}
	return claims, nil
}

// checkShape rejects structural garbage before any signature computation:
// the token must have three non-empty segments and a decodable claims segment
// with a non-empty subject and a known kind.
func checkShape(tokenStr string) error {
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		return ErrMalformed
	}
	for _, p := range parts {
		if p == "" {
			return ErrMalformed
		}
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return ErrMalformed
	}

	var shape struct {
		Subject string    `json:"sub"`
		Kind    TokenKind `json:"kind"`
	}
	if err := json.Unmarshal(payload, &shape); err != nil {
		return ErrMalformed
	}
	if shape.Subject == "" || !shape.Kind.Known() {
		return ErrMalformed
	}
	return nil
}

// mapParseError collapses the library's error surface onto our taxonomy so
// callers never depend on golang-jwt internals.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return ErrInvalidClaim
	}
}
