package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/lumonhq/persons/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	exampleIssuer = "persons-test"
	exampleSecret = "0123456789abcdef0123456789abcdef"
)

func newCodec(t *testing.T) (*jwtx.HS256Signer, *jwtx.HS256Verifier) {
	t.Helper()

	signer, err := jwtx.NewSignerHS256([]byte(exampleSecret))
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256([]byte(exampleSecret), exampleIssuer)
	require.NoError(t, err)
	return signer, verifier
}

func TestHS256SignAndVerify(t *testing.T) {
	t.Parallel()
	signer, verifier := newCodec(t)

	now := time.Now().UTC()
	claims := jwtx.NewClaims("leandro", jwtx.KindAccess, []string{"admin", "manager"}, exampleIssuer, 10*time.Minute, now)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "HS256", signer.Alg())

	parsed, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "leandro", parsed.Subject)
	require.Equal(t, jwtx.KindAccess, parsed.Kind)
	require.ElementsMatch(t, []string{"admin", "manager"}, parsed.Roles)
	require.Equal(t, exampleIssuer, parsed.Issuer)
	require.NotEmpty(t, parsed.ID)
}

func TestHS256RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewSignerHS256([]byte("too-short"))
	require.Error(t, err)
	_, err = jwtx.NewVerifierHS256([]byte("too-short"), exampleIssuer)
	require.Error(t, err)
}

func TestVerifyExpiredToken(t *testing.T) {
	t.Parallel()
	signer, verifier := newCodec(t)

	// Issued in the past so the expiry has already gone by.
	past := time.Now().UTC().Add(-2 * time.Hour)
	claims := jwtx.NewClaims("leandro", jwtx.KindAccess, nil, exampleIssuer, time.Minute, past)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyFlippedSignatureByte(t *testing.T) {
	t.Parallel()
	signer, verifier := newCodec(t)

	claims := jwtx.NewClaims("leandro", jwtx.KindAccess, nil, exampleIssuer, 10*time.Minute, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	forged := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = verifier.Verify(forged)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestFlippedSignatureOnExpiredTokenStillReportsSignature(t *testing.T) {
	t.Parallel()
	signer, verifier := newCodec(t)

	past := time.Now().UTC().Add(-2 * time.Hour)
	claims := jwtx.NewClaims("leandro", jwtx.KindAccess, nil, exampleIssuer, time.Minute, past)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	forged := parts[0] + "." + parts[1] + "." + string(sig)

	// Signature verdicts win over expiry; the signature is checked first.
	_, err = verifier.Verify(forged)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyTamperedPayload(t *testing.T) {
	t.Parallel()
	signer, verifier := newCodec(t)

	claims := jwtx.NewClaims("leandro", jwtx.KindAccess, nil, exampleIssuer, 10*time.Minute, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	other := jwtx.NewClaims("mallory", jwtx.KindAccess, nil, exampleIssuer, 10*time.Minute, time.Now().UTC())
	otherToken, err := signer.Sign(other)
	require.NoError(t, err)

	// Splice mallory's payload into leandro's envelope.
	a := strings.Split(token, ".")
	b := strings.Split(otherToken, ".")
	spliced := a[0] + "." + b[1] + "." + a[2]

	_, err = verifier.Verify(spliced)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyMalformedInput(t *testing.T) {
	t.Parallel()
	signer, verifier := newCodec(t)

	valid, err := signer.Sign(jwtx.NewClaims("leandro", jwtx.KindAccess, nil, exampleIssuer, time.Minute, time.Now().UTC()))
	require.NoError(t, err)
	parts := strings.Split(valid, ".")

	cases := map[string]string{
		"empty":            "",
		"not a token":      "hello world",
		"two segments":     parts[0] + "." + parts[1],
		"empty signature":  parts[0] + "." + parts[1] + ".",
		"bad base64":       parts[0] + ".!!!not-base64!!!." + parts[2],
		"four segments":    valid + ".extra",
		"payload not json": parts[0] + ".aGVsbG8." + parts[2],
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := verifier.Verify(input)
			require.ErrorIs(t, err, jwtx.ErrMalformed)
		})
	}
}

func TestVerifyUnknownKindIsMalformed(t *testing.T) {
	t.Parallel()
	signer, verifier := newCodec(t)

	claims := jwtx.NewClaims("leandro", "session", nil, exampleIssuer, time.Minute, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	// An unknown kind is a shape problem, reported before signature checks.
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}

func TestVerifyKind(t *testing.T) {
	t.Parallel()
	signer, verifier := newCodec(t)

	refresh, err := signer.Sign(jwtx.NewClaims("leandro", jwtx.KindRefresh, nil, exampleIssuer, time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	_, err = verifier.VerifyKind(refresh, jwtx.KindRefresh)
	require.NoError(t, err)

	_, err = verifier.VerifyKind(refresh, jwtx.KindAccess)
	require.ErrorIs(t, err, jwtx.ErrWrongKind)
}

func TestVerifyIssuerMismatch(t *testing.T) {
	t.Parallel()
	signer, _ := newCodec(t)

	verifier, err := jwtx.NewVerifierHS256([]byte(exampleSecret), "someone-else")
	require.NoError(t, err)

	token, err := signer.Sign(jwtx.NewClaims("leandro", jwtx.KindAccess, nil, exampleIssuer, time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()
	signer, _ := newCodec(t)

	otherVerifier, err := jwtx.NewVerifierHS256([]byte("ffffffffffffffffffffffffffffffff"), exampleIssuer)
	require.NoError(t, err)

	token, err := signer.Sign(jwtx.NewClaims("leandro", jwtx.KindAccess, nil, exampleIssuer, time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	_, err = otherVerifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}
