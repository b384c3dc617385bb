// Package cryptox handles password hashing. Hashes are self-describing
// modular-crypt strings, and verification dispatches on the algorithm tag so
// hashes issued before an algorithm upgrade keep verifying.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Argon2id parameters for newly created hashes.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

var (
	// ErrMismatch is returned when the password does not match the hash.
	ErrMismatch = errors.New("cryptox: password does not match")

	// ErrUnknownAlgorithm is returned for hashes whose tag has no registered
	// verifier.
	ErrUnknownAlgorithm = errors.New("cryptox: unknown hash algorithm")
)

// Verifier checks a plaintext password against an encoded hash produced by a
// single algorithm.
type Verifier func(password, encoded string) error

// registry maps a modular-crypt algorithm tag to its verifier. Argon2id is
// the current default; the bcrypt tags keep hashes from before the argon2
// migration verifiable.
var registry = map[string]Verifier{
	"argon2id": verifyArgon2id,
	"2a":       verifyBcrypt,
	"2b":       verifyBcrypt,
	"2y":       verifyBcrypt,
}

// HashPassword generates a PHC-format Argon2id hash including salt and
// parameters.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// HashPasswordBcrypt produces a bcrypt hash. New accounts use argon2id; this
// exists so fixtures for pre-migration accounts can be produced.
func HashPasswordBcrypt(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// VerifyPassword compares a plaintext password against any registered hash
// format, selected by the hash's own algorithm tag.
func VerifyPassword(password, encoded string) error {
	tag, err := algorithmTag(encoded)
	if err != nil {
		return err
	}
	verify, ok := registry[tag]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, tag)
	}
	return verify(password, encoded)
}

// algorithmTag extracts the leading "$tag$" from a modular-crypt string.
func algorithmTag(encoded string) (string, error) {
	if len(encoded) < 2 || encoded[0] != '$' {
		return "", fmt.Errorf("%w: missing tag", ErrUnknownAlgorithm)
	}
	rest := encoded[1:]
	i := strings.IndexByte(rest, '$')
	if i <= 0 {
		return "", fmt.Errorf("%w: missing tag", ErrUnknownAlgorithm)
	}
	return rest[:i], nil
}

func verifyArgon2id(password, encoded string) error {
	// PHC format: $argon2id$v=19$m=X,t=Y,p=Z$salt$hash
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return errors.New("cryptox: invalid argon2id hash: expected 6 parts")
	}
	if parts[2] != "v=19" {
		return errors.New("cryptox: invalid argon2id hash: wrong version")
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("cryptox: invalid argon2id parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("cryptox: invalid argon2id salt: %w", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("cryptox: invalid argon2id hash: %w", err)
	}

	computed := argon2.IDKey([]byte(password), salt, iters, mem, par, uint32(len(expected)))
	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return ErrMismatch
}

func verifyBcrypt(password, encoded string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}
	return nil
}
