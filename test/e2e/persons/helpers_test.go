package persons_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/lumonhq/persons/internal/domain"
	httpapi "github.com/lumonhq/persons/internal/http"
	"github.com/lumonhq/persons/internal/metrics"
	"github.com/lumonhq/persons/internal/service"
	"github.com/lumonhq/persons/internal/store/drivers/sqlite"
	"github.com/lumonhq/persons/pkg/client"
	"github.com/lumonhq/persons/pkg/cryptox"
	"github.com/lumonhq/persons/pkg/jwtx"
	"github.com/lumonhq/persons/pkg/slogx"
)

/*
 * End-to-end tests for the persons service. The full router is mounted on
 * an httptest server backed by a throwaway SQLite file and exercised
 * through the public SDK, so requests travel the same path as production
 * traffic.
 */

const (
	adminUsername  = "leandro"
	adminPassword  = "admin123"
	viewerUsername = "viewer"
	viewerPassword = "viewer123"

	signingSecret = "e2e-secret-0123456789abcdef01234567"
	issuer        = "persons-e2e"
)

// setupServer starts an in-process service instance and returns an SDK
// client pointed at it.
func setupServer(t *testing.T) *client.Client {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256([]byte(signingSecret))
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256([]byte(signingSecret), issuer)
	require.NoError(t, err)

	m := metrics.New(prometheus.NewRegistry())
	logger := slogx.New(slogx.Config{Service: "persons-e2e", Level: "error", Format: "text"})

	router := httpapi.NewRouter(verifier, "e2e", st, m, logger)
	router.AuthService = &service.AuthService{
		Store:      st,
		Signer:     signer,
		Verifier:   verifier,
		Issuer:     issuer,
		AccessTTL:  time.Hour,
		RefreshTTL: 72 * time.Hour,
		Metrics:    m,
	}
	router.PersonService = &service.PersonService{Store: st}
	router.ApplyRoutes()

	seed := func(username, password string, roles []string) {
		hash, err := cryptox.HashPassword(password)
		require.NoError(t, err)
		require.NoError(t, st.Accounts().Create(context.Background(), domain.Account{
			Username:     username,
			PasswordHash: hash,
			Roles:        roles,
			Enabled:      true,
		}))
	}
	seed(adminUsername, adminPassword, []string{"admin", "user"})
	seed(viewerUsername, viewerPassword, []string{"user"})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return client.New(server.URL)
}

// requireAPIError asserts err is an APIError with the given status.
func requireAPIError(t *testing.T, err error, status int) *client.APIError {
	t.Helper()
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	return apiErr
}
