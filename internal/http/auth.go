package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lumonhq/persons/internal/service"
	"github.com/lumonhq/persons/pkg/client"
	"github.com/lumonhq/persons/pkg/httpx"
	"github.com/lumonhq/persons/pkg/jwtx"
)

// errBadRequestBody marks request bodies that failed to decode.
var errBadRequestBody = errors.New("bad request body")

type AuthHandler struct {
	AuthService *service.AuthService
	Faults      *httpx.Mapper
}

// SignIn handles credential sign-in.
//
//	@Summary		Sign in
//	@Description	Verifies a username and password pair and returns a fresh access and refresh token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		client.SignInRequest	true	"Credentials"
//	@Success		200		{object}	client.TokenResponse	"Token pair"
//	@Failure		400		{object}	client.FaultResponse	"Missing or malformed fields"
//	@Failure		403		{object}	client.FaultResponse	"Invalid credentials"
//	@Failure		429		{object}	client.FaultResponse	"Too many attempts"
//	@Router			/auth/signin [post].
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req client.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Faults.WriteError(w, r, fmt.Errorf("%w: %w", errBadRequestBody, err))
		return
	}

	pair, err := h.AuthService.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		h.Faults.WriteError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, client.TokenResponse{
		Username:     pair.Username,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh handles token renewal.
//
//	@Summary		Refresh tokens
//	@Description	Exchanges a valid refresh token, presented as a Bearer credential, for a new token pair.
//	@Description	The token subject must match the username in the path.
//	@Tags			Auth
//	@Produce		json
//	@Param			username		path		string	true	"Account username"
//	@Param			Authorization	header		string	true	"Bearer {refresh token}"
//	@Success		200				{object}	client.TokenResponse	"New token pair"
//	@Failure		400				{object}	client.FaultResponse	"Malformed token"
//	@Failure		403				{object}	client.FaultResponse	"Token not accepted"
//	@Router			/auth/refresh/{username} [put].
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	// The refresh token arrives in the Authorization header. The global
	// authentication middleware ignores it because it is not an access
	// token; this handler pulls it out of the header directly.
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		h.Faults.WriteError(w, r, jwtx.ErrMalformed)
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), username, token)
	if err != nil {
		h.Faults.WriteError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, client.TokenResponse{
		Username:     pair.Username,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
