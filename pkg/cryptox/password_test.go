package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyArgon2id(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")

	require.NoError(t, VerifyPassword("admin123", hash))
	require.ErrorIs(t, VerifyPassword("wrong", hash), ErrMismatch)
}

func TestHashAndVerifyBcrypt(t *testing.T) {
	t.Parallel()

	hash, err := HashPasswordBcrypt("admin123")
	require.NoError(t, err)
	require.True(t, hash[0] == '$')

	require.NoError(t, VerifyPassword("admin123", hash))
	require.ErrorIs(t, VerifyPassword("wrong", hash), ErrMismatch)
}

func TestVerifyDispatchesOnTag(t *testing.T) {
	t.Parallel()

	argon, err := HashPassword("s3cret")
	require.NoError(t, err)
	bc, err := HashPasswordBcrypt("s3cret")
	require.NoError(t, err)

	// Same password, two stored formats, one entry point.
	require.NoError(t, VerifyPassword("s3cret", argon))
	require.NoError(t, VerifyPassword("s3cret", bc))
}

func TestVerifyUnknownAlgorithm(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, VerifyPassword("x", "$scrypt$n=1$abc$def"), ErrUnknownAlgorithm)
	require.ErrorIs(t, VerifyPassword("x", "plaintext"), ErrUnknownAlgorithm)
	require.ErrorIs(t, VerifyPassword("x", "$"), ErrUnknownAlgorithm)
}

func TestVerifyArgon2idRejectsMangledHash(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw")
	require.NoError(t, err)

	// Chop off the hash segment so the structure is wrong.
	mangled := hash[:len(hash)-10]
	require.Error(t, VerifyPassword("pw", mangled))
}
