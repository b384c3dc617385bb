package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lumonhq/persons/internal/domain"
	"github.com/lumonhq/persons/internal/metrics"
	"github.com/lumonhq/persons/internal/store"
	"github.com/lumonhq/persons/pkg/cryptox"
	"github.com/lumonhq/persons/pkg/jwtx"
	"github.com/lumonhq/persons/pkg/slogx"
)

var (
	// ErrBadCredentials covers unknown usernames and wrong passwords alike
	// so responses never leak which half was wrong.
	ErrBadCredentials = errors.New("invalid username or password")

	// ErrUnauthorized covers refresh attempts with unusable tokens.
	ErrUnauthorized = errors.New("refresh token not accepted")

	// ErrRequiredValue is returned when a request is missing a mandatory field.
	ErrRequiredValue = errors.New("required value is missing")

	// ErrAccountDisabled is returned for sign-in against a disabled account.
	ErrAccountDisabled = errors.New("account is disabled")
)

// AuthService issues and renews token pairs. Tokens are self-contained;
// the only state consulted is the account record itself.
type AuthService struct {
	Store      store.Store
	Signer     jwtx.Signer
	Verifier   jwtx.Verifier
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Metrics    *metrics.Metrics
}

// SignIn verifies the credential pair and issues a fresh token pair.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (domain.TokenPair, error) {
	if username == "" || password == "" {
		return domain.TokenPair{}, fmt.Errorf("%w: username and password", ErrRequiredValue)
	}

	account, err := s.Store.Accounts().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Metrics.RecordAuthFailure("unknown_account")
			return domain.TokenPair{}, ErrBadCredentials
		}
		return domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			s.Metrics.RecordAuthFailure("bad_password")
			return domain.TokenPair{}, ErrBadCredentials
		}
		return domain.TokenPair{}, err
	}

	if !account.Enabled {
		s.Metrics.RecordAuthFailure("disabled_account")
		return domain.TokenPair{}, ErrAccountDisabled
	}

	pair, err := s.issuePair(account)
	if err != nil {
		return domain.TokenPair{}, err
	}

	s.Metrics.RecordSignIn()
	slogx.FromContext(ctx).Info("sign-in", "username", account.Username)
	return pair, nil
}

// Refresh validates a refresh token presented for the given username and
// issues a new pair. The old pair stays valid until it expires; nothing is
// revoked because nothing is stored.
func (s *AuthService) Refresh(ctx context.Context, username, refreshToken string) (domain.TokenPair, error) {
	if username == "" || refreshToken == "" {
		return domain.TokenPair{}, fmt.Errorf("%w: username and refresh token", ErrRequiredValue)
	}

	claims, err := s.Verifier.VerifyKind(refreshToken, jwtx.KindRefresh)
	if err != nil {
		s.Metrics.RecordAuthFailure("bad_refresh_token")
		if errors.Is(err, jwtx.ErrMalformed) {
			return domain.TokenPair{}, err
		}
		return domain.TokenPair{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	if claims.Subject != username {
		s.Metrics.RecordAuthFailure("subject_mismatch")
		return domain.TokenPair{}, fmt.Errorf("%w: token subject mismatch", ErrUnauthorized)
	}

	account, err := s.Store.Accounts().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, fmt.Errorf("%w: account no longer exists", ErrUnauthorized)
		}
		return domain.TokenPair{}, err
	}
	if !account.Enabled {
		return domain.TokenPair{}, fmt.Errorf("%w: account is disabled", ErrUnauthorized)
	}

	pair, err := s.issuePair(account)
	if err != nil {
		return domain.TokenPair{}, err
	}

	slogx.FromContext(ctx).Info("token refresh", "username", account.Username)
	return pair, nil
}

func (s *AuthService) issuePair(account domain.Account) (domain.TokenPair, error) {
	now := time.Now()

	access, err := s.Signer.Sign(jwtx.NewClaims(account.Username, jwtx.KindAccess, account.Roles, s.Issuer, s.AccessTTL, now))
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.Signer.Sign(jwtx.NewClaims(account.Username, jwtx.KindRefresh, nil, s.Issuer, s.RefreshTTL, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	s.Metrics.RecordTokenIssued(string(jwtx.KindAccess))
	s.Metrics.RecordTokenIssued(string(jwtx.KindRefresh))

	return domain.TokenPair{
		Username:     account.Username,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
