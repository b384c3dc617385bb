package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumonhq/persons/pkg/httpx"
)

func TestIPKeyExtractor(t *testing.T) {
	t.Run("extracts from RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"

		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")

		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("uses X-Real-IP when X-Forwarded-For absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Real-IP", "203.0.113.2")

		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})
}

func TestUsernameKeyExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Empty(t, httpx.UsernameKeyExtractor(req))

	ctx := httpx.ContextWithIdentity(req.Context(), httpx.Identity{Username: "leandro"})
	require.Equal(t, "leandro", httpx.UsernameKeyExtractor(req.WithContext(ctx)))
}

func TestRateLimit(t *testing.T) {
	faults := httpx.NewMapper(
		httpx.Rule{Matches: httpx.IsRateLimited, Status: http.StatusTooManyRequests},
	)
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allows up to burst then rejects", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}
		handler := httpx.RateLimitByIP(cfg, faults)(ok)

		send := func() *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
			req.RemoteAddr = "10.0.0.1:55555"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			return rec
		}

		for i := 0; i < 3; i++ {
			require.Equal(t, http.StatusOK, send().Code)
		}

		rec := send()
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		handler := httpx.RateLimitByIP(cfg, faults)(ok)

		send := func(addr string) int {
			req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
			req.RemoteAddr = addr
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			return rec.Code
		}

		require.Equal(t, http.StatusOK, send("10.0.0.1:1"))
		require.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1"))
		require.Equal(t, http.StatusOK, send("10.0.0.2:1"))
	})

	t.Run("empty key allows request", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		handler := httpx.RateLimit(cfg, func(*http.Request) string { return "" }, faults)(ok)

		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})
}
