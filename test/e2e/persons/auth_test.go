package persons_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignInAndRefreshFlow(t *testing.T) {
	api := setupServer(t)
	ctx := context.Background()

	session, err := api.SignIn(ctx, adminUsername, adminPassword)
	require.NoError(t, err)

	first := session.Tokens()
	require.Equal(t, adminUsername, first.Username)
	require.NotEmpty(t, first.AccessToken)
	require.NotEmpty(t, first.RefreshToken)

	// Renew and make sure the new access token works. The earlier pair is
	// not revoked; it simply ages out.
	require.NoError(t, session.Refresh(ctx))
	renewed := session.Tokens()
	require.NotEqual(t, first.AccessToken, renewed.AccessToken)

	_, err = session.ListPersons(ctx)
	require.NoError(t, err)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	api := setupServer(t)
	ctx := context.Background()

	_, err := api.SignIn(ctx, adminUsername, "wrong-password")
	apiErr := requireAPIError(t, err, http.StatusForbidden)
	require.Equal(t, "invalid username or password", apiErr.Fault.Message)

	_, err = api.SignIn(ctx, "nobody", adminPassword)
	requireAPIError(t, err, http.StatusForbidden)

	_, err = api.SignIn(ctx, "", "")
	requireAPIError(t, err, http.StatusBadRequest)
}

func TestHealthEndpoints(t *testing.T) {
	api := setupServer(t)
	ctx := context.Background()

	live, err := api.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := api.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
}
