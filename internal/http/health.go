package http

import (
	"net/http"
	"time"

	"github.com/lumonhq/persons/internal/store"
	"github.com/lumonhq/persons/pkg/client"
	"github.com/lumonhq/persons/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Returns 200 whenever the process is running, with uptime and version.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	client.HealthResponse
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, client.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Returns 200 when the database is reachable, 503 otherwise.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	client.HealthResponse
//	@Failure		503	{object}	client.HealthResponse
//	@Router			/readyz [get].
func ReadyzHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, client.HealthResponse{Status: "unavailable"})
			return
		}
		httpx.WriteJSON(w, http.StatusOK, client.HealthResponse{Status: "ok"})
	}
}
