package client

import "time"

// SignInRequest is the body of POST /auth/signin.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by sign-in and refresh. Both tokens are JWTs;
// presenting the refresh token to PUT /auth/refresh/{username} yields a
// fresh pair without re-sending the password.
type TokenResponse struct {
	Username     string `json:"username"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// PersonRequest carries the writable person fields for create and update.
type PersonRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Gender    string `json:"gender"`
	Enabled   *bool  `json:"enabled,omitempty"`
}

// PersonResponse is the person representation returned by the API.
type PersonResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Address   string    `json:"address"`
	Gender    string    `json:"gender"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FaultResponse is the uniform error body returned by every endpoint.
type FaultResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Details   string    `json:"details"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime,omitempty"`
	Version string `json:"version,omitempty"`
}
