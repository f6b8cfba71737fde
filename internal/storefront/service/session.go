package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// DefaultLookupTimeout bounds the user lookup done on every authenticated request.
const DefaultLookupTimeout = 5 * time.Second

// dummyHash is verified against when the email is unknown so both login
// failure paths pay for one password verification.
var dummyHash = sync.OnceValue(func() string {
	h, err := cryptox.HashPassword("storefront-dummy-password")
	if err != nil {
		panic(fmt.Sprintf("service: hash dummy password: %v", err))
	}
	return h
})

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Identity  domain.Identity
}

type SessionService struct {
	Store         store.Store
	Signer        jwtx.Signer
	Verifier      jwtx.Verifier
	Issuer        string
	TTL           time.Duration
	LookupTimeout time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return jwtx.DefaultSessionTTL
}

// Login checks credentials and mints a session token whose subject is the
// user id. Unknown email and wrong password both return
// ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, email, password string) (Session, error) {
	l := slogx.FromContext(ctx)

	email = normaliseEmail(email)
	if email == "" || password == "" {
		return Session{}, ErrMissingCredentials
	}

	// Don't start a hash for a client that has already gone away.
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, dummyHash())
			l.Info("login rejected", slog.String("reason", "unknown_email"))
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Warn("stored password hash unusable", slog.String("user_id", user.ID), slog.Any("error", err))
		}
		l.Info("login rejected", slog.String("reason", "wrong_password"), slog.String("user_id", user.ID))
		return Session{}, ErrInvalidCredentials
	}

	now := s.now()
	claims := jwtx.NewSessionClaims(user.ID, s.Issuer, s.ttl(), now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return Session{}, fmt.Errorf("sign session token: %w", err)
	}

	l.Info("login succeeded", slog.String("user_id", user.ID))
	return Session{
		Token:     token,
		ExpiresAt: claims.Expiry(),
		Identity:  user.Identity(),
	}, nil
}

// Resolve verifies a token and loads the identity it names. The user is
// re-read on every call so role changes and deletions apply immediately.
func (s *SessionService) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		switch {
		case errors.Is(err, jwtx.ErrExpired):
			return domain.Identity{}, fmt.Errorf("%w: %w", ErrExpiredToken, err)
		case errors.Is(err, jwtx.ErrInvalidSig):
			return domain.Identity{}, fmt.Errorf("%w: %w", ErrBadSignature, err)
		default:
			return domain.Identity{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
		}
	}

	timeout := s.LookupTimeout
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	lookupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	user, err := s.Store.Users().GetUserByID(lookupCtx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Identity{}, ErrUnknownSubject
		}
		return domain.Identity{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return user.Identity(), nil
}
