package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/lumonhq/persons/pkg/jwtx"
)

// ErrMissingIdentity is returned when a protected route is reached without
// an authenticated identity in the request context.
var ErrMissingIdentity = errors.New("httpx: missing identity")

// ErrForbiddenRole is returned when the caller lacks every required role.
var ErrForbiddenRole = errors.New("httpx: insufficient role")

// Authenticate validates Bearer access tokens. Requests without an
// Authorization header pass through untouched so public routes keep
// working; requests that present a token must present a valid one, or the
// middleware short-circuits with a fault envelope.
func Authenticate(verifier jwtx.Verifier, faults *Mapper) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				faults.WriteError(w, r, jwtx.ErrMalformed)
				return
			}

			claims, err := verifier.VerifyKind(token, jwtx.KindAccess)
			if err != nil {
				faults.WriteError(w, r, err)
				return
			}

			ctx := ContextWithIdentity(r.Context(), Identity{
				Username: claims.Subject,
				Roles:    claims.Roles,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireIdentity guards protected routes. It rejects requests that made it
// this far without an authenticated identity.
func RequireIdentity(faults *Mapper) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := IdentityFromContext(r.Context()); !ok {
				faults.WriteError(w, r, ErrMissingIdentity)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyRole guards routes that need at least one of the given roles.
// It implies RequireIdentity.
func RequireAnyRole(faults *Mapper, roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				faults.WriteError(w, r, ErrMissingIdentity)
				return
			}
			for _, role := range roles {
				if id.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			faults.WriteError(w, r, ErrForbiddenRole)
		})
	}
}
