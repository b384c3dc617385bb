package httpx

import (
	"context"
	"slices"
)

// Identity is the caller's authenticated identity, rebuilt from a validated
// access token. It lives only for the duration of the request.
type Identity struct {
	Username string
	Roles    []string
}

// HasRole reports whether the identity carries the given role.
func (id Identity) HasRole(role string) bool {
	return slices.Contains(id.Roles, role)
}

type identityKey struct{}

// ContextWithIdentity stores the authenticated identity in ctx.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
