package persons_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnonymousAccessIsRejected(t *testing.T) {
	api := setupServer(t)

	// Raw request with no Authorization header at all.
	resp, err := api.HTTPClient.Get(api.BaseURL + "/api/person/v1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestTamperedTokenIsRejected(t *testing.T) {
	api := setupServer(t)
	ctx := context.Background()

	session, err := api.SignIn(ctx, adminUsername, adminPassword)
	require.NoError(t, err)

	token := session.Tokens().AccessToken
	tampered := token[:len(token)-4] + "AAAA"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, api.BaseURL+"/api/person/v1", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tampered)

	resp, err := api.HTTPClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSignInRateLimit(t *testing.T) {
	api := setupServer(t)
	ctx := context.Background()

	// The strict profile allows five attempts per window per IP; the sixth
	// must be throttled.
	for i := 0; i < 5; i++ {
		_, err := api.SignIn(ctx, adminUsername, "wrong-password")
		requireAPIError(t, err, http.StatusForbidden)
	}

	_, err := api.SignIn(ctx, adminUsername, "wrong-password")
	requireAPIError(t, err, http.StatusTooManyRequests)
}
