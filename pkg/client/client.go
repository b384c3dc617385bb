// Package client is a small Go SDK for the persons service. It covers the
// public auth endpoints and, through an authenticated Session, the person
// API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a persons service instance. Unauthenticated operations
// hang off Client directly; SignIn returns a Session for the rest.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// APIError is a fault envelope decoded from a non-2xx response.
type APIError struct {
	StatusCode int
	Fault      FaultResponse
}

func (e *APIError) Error() string {
	if e.Fault.Message != "" {
		return fmt.Sprintf("persons api: %d: %s", e.StatusCode, e.Fault.Message)
	}
	return fmt.Sprintf("persons api: unexpected status %d", e.StatusCode)
}

// SignIn exchanges credentials for a token pair and opens a Session.
func (c *Client) SignIn(ctx context.Context, username, password string) (*Session, error) {
	var tokens TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/signin", "", SignInRequest{
		Username: username,
		Password: password,
	}, &tokens)
	if err != nil {
		return nil, err
	}
	return &Session{client: c, tokens: tokens}, nil
}

// Livez reports whether the service is up.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/livez", "", nil, &out)
	return out, err
}

// Readyz reports whether the service can reach its database.
func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/readyz", "", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr.Fault)
		return apiErr
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Session holds a token pair and performs authenticated calls.
type Session struct {
	client *Client
	tokens TokenResponse
}

// Tokens returns the current token pair.
func (s *Session) Tokens() TokenResponse {
	return s.tokens
}

// Refresh obtains a new token pair using the refresh token and adopts it.
func (s *Session) Refresh(ctx context.Context) error {
	path := "/auth/refresh/" + url.PathEscape(s.tokens.Username)
	var tokens TokenResponse
	if err := s.client.do(ctx, http.MethodPut, path, s.tokens.RefreshToken, nil, &tokens); err != nil {
		return err
	}
	s.tokens = tokens
	return nil
}

func (s *Session) ListPersons(ctx context.Context) ([]PersonResponse, error) {
	var out []PersonResponse
	err := s.client.do(ctx, http.MethodGet, "/api/person/v1", s.tokens.AccessToken, nil, &out)
	return out, err
}

func (s *Session) GetPerson(ctx context.Context, id string) (PersonResponse, error) {
	var out PersonResponse
	err := s.client.do(ctx, http.MethodGet, "/api/person/v1/"+url.PathEscape(id), s.tokens.AccessToken, nil, &out)
	return out, err
}

func (s *Session) CreatePerson(ctx context.Context, in PersonRequest) (PersonResponse, error) {
	var out PersonResponse
	err := s.client.do(ctx, http.MethodPost, "/api/person/v1", s.tokens.AccessToken, in, &out)
	return out, err
}

func (s *Session) UpdatePerson(ctx context.Context, id string, in PersonRequest) (PersonResponse, error) {
	var out PersonResponse
	err := s.client.do(ctx, http.MethodPut, "/api/person/v1/"+url.PathEscape(id), s.tokens.AccessToken, in, &out)
	return out, err
}

// DisablePerson soft-deletes a person and returns the updated record.
func (s *Session) DisablePerson(ctx context.Context, id string) (PersonResponse, error) {
	var out PersonResponse
	err := s.client.do(ctx, http.MethodPatch, "/api/person/v1/"+url.PathEscape(id), s.tokens.AccessToken, nil, &out)
	return out, err
}

// DeletePerson permanently removes a person. Requires the admin role.
func (s *Session) DeletePerson(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/api/person/v1/"+url.PathEscape(id), s.tokens.AccessToken, nil, nil)
}
