package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lumonhq/persons/internal/metrics"
	"github.com/lumonhq/persons/internal/service"
	"github.com/lumonhq/persons/internal/store"
	"github.com/lumonhq/persons/pkg/httpx"
	"github.com/lumonhq/persons/pkg/jwtx"
	"github.com/lumonhq/persons/pkg/slogx"

	_ "github.com/lumonhq/persons/api/docs" // Swagger docs
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	faults       *httpx.Mapper

	store         store.Store
	AuthService   *service.AuthService
	PersonService *service.PersonService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Router {
	faults := newFaultMapper()

	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		faults:       faults,
		store:        st,
	}

	// Global middleware chain. Authentication is attached per route so the
	// refresh endpoint can read its refresh token from the Authorization
	// header without the access-token check rejecting it first.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		m.HTTPMiddleware,
	}

	return r
}

// newFaultMapper builds the ordered fault rule chain. More specific rules
// come first; anything unmatched falls through to a 500 that preserves the
// error message.
func newFaultMapper() *httpx.Mapper {
	return httpx.NewMapper(
		httpx.MapTo(store.ErrNotFound, http.StatusNotFound),
		httpx.MapTo(service.ErrRequiredValue, http.StatusBadRequest),
		httpx.MapToMsg(errBadRequestBody, http.StatusBadRequest, "request body is not valid JSON"),
		httpx.MapToMsg(jwtx.ErrMalformed, http.StatusBadRequest, "malformed token"),
		httpx.MapToMsg(service.ErrBadCredentials, http.StatusForbidden, "invalid username or password"),
		httpx.MapToMsg(service.ErrAccountDisabled, http.StatusForbidden, "account is disabled"),
		httpx.MapToMsg(service.ErrUnauthorized, http.StatusForbidden, "refresh token not accepted"),
		httpx.MapToMsg(jwtx.ErrExpired, http.StatusForbidden, "token has expired"),
		httpx.MapToMsg(jwtx.ErrInvalidSig, http.StatusForbidden, "invalid token"),
		httpx.MapToMsg(jwtx.ErrNotYetValid, http.StatusForbidden, "invalid token"),
		httpx.MapToMsg(jwtx.ErrIssuer, http.StatusForbidden, "invalid token"),
		httpx.MapToMsg(jwtx.ErrWrongKind, http.StatusForbidden, "invalid token"),
		httpx.MapToMsg(jwtx.ErrInvalidClaim, http.StatusForbidden, "invalid token"),
		httpx.MapToMsg(httpx.ErrMissingIdentity, http.StatusForbidden, "authentication required"),
		httpx.MapToMsg(httpx.ErrForbiddenRole, http.StatusForbidden, "insufficient permissions"),
		httpx.Rule{Matches: httpx.IsRateLimited, Status: http.StatusTooManyRequests},
	)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerPersons()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Persons API
//	@version		0.1.0
//	@description	Person management REST API secured with stateless JWT token pairs.
//	@description
//	@description	Tokens are signed with HS256. Present the access token as a Bearer credential;
//	@description	use the refresh token against the refresh endpoint to obtain a new pair.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, Faults: r.faults}

	// Credential endpoints get the strict limit to slow brute force.
	r.Mux.Handle("POST /auth/signin",
		httpx.Chain(http.HandlerFunc(h.SignIn),
			httpx.RateLimitByIP(httpx.StrictLimit, r.faults),
		),
	)
	r.Mux.Handle("PUT /auth/refresh/{username}",
		httpx.Chain(http.HandlerFunc(h.Refresh),
			httpx.RateLimitByIP(httpx.StrictLimit, r.faults),
		),
	)
}

func (r *Router) registerPersons() {
	h := &PersonHandler{PersonService: r.PersonService, Faults: r.faults}

	reads := func(next http.HandlerFunc) http.Handler {
		return httpx.Chain(next,
			httpx.Authenticate(r.verifier, r.faults),
			httpx.RequireIdentity(r.faults),
			httpx.RateLimitByUser(httpx.LenientLimit, r.faults),
		)
	}
	writes := func(next http.HandlerFunc) http.Handler {
		return httpx.Chain(next,
			httpx.Authenticate(r.verifier, r.faults),
			httpx.RequireIdentity(r.faults),
			httpx.RateLimitByUser(httpx.ModerateLimit, r.faults),
		)
	}

	r.Mux.Handle("GET /api/person/v1", reads(h.List))
	r.Mux.Handle("GET /api/person/v1/{id}", reads(h.Get))
	r.Mux.Handle("POST /api/person/v1", writes(h.Create))
	r.Mux.Handle("PUT /api/person/v1/{id}", writes(h.Update))
	r.Mux.Handle("PATCH /api/person/v1/{id}", writes(h.Disable))

	// Hard delete is admin only.
	r.Mux.Handle("DELETE /api/person/v1/{id}",
		httpx.Chain(http.HandlerFunc(h.Delete),
			httpx.Authenticate(r.verifier, r.faults),
			httpx.RequireAnyRole(r.faults, "admin"),
			httpx.RateLimitByUser(httpx.ModerateLimit, r.faults),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.store))
	r.Mux.Handle("GET /metrics", promhttp.Handler())
}
