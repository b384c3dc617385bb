// Package httpx holds the HTTP plumbing shared by every route: the middleware
// chain, bearer-token interception, fault mapping, JSON helpers, and rate
// limiting.
package httpx

import "net/http"

// Middleware wraps a handler with extra behavior.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares to h so the first listed runs outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
