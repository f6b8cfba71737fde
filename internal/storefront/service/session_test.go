package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginThenResolve(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "a@b.com", "secret", domain.RoleUser)

	sess, err := f.sessions.Login(t.Context(), "a@b.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)
	require.Equal(t, f.now.Add(time.Hour), sess.ExpiresAt)

	id, err := f.sessions.Resolve(t.Context(), sess.Token)
	require.NoError(t, err)
	require.Equal(t, u.ID, id.UserID)
	require.Equal(t, "a@b.com", id.Email)
	require.Equal(t, domain.RoleUser, id.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	f.user(t, "a@b.com", "secret", domain.RoleUser)

	_, wrongPassword := f.sessions.Login(t.Context(), "a@b.com", "not-the-secret")
	_, unknownEmail := f.sessions.Login(t.Context(), "nobody@b.com", "secret")

	require.ErrorIs(t, wrongPassword, service.ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, service.ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginMissingCredentials(t *testing.T) {
	f := newFixture(t)

	for _, tc := range []struct{ email, password string }{
		{"", "secret"},
		{"a@b.com", ""},
		{"   ", "secret"},
	} {
		_, err := f.sessions.Login(t.Context(), tc.email, tc.password)
		require.ErrorIs(t, err, service.ErrMissingCredentials)
	}
}

func TestLoginLegacyBcryptRecord(t *testing.T) {
	f := newFixture(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("coder"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, f.store.Users().CreateUser(t.Context(), domain.User{
		ID:           "01HZZZZZZZZZZZZZZZZZZZZZZZ",
		FirstName:    "Pepe",
		LastName:     "Perez",
		Email:        "pepe@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}))

	_, err = f.sessions.Login(t.Context(), "pepe@example.com", "coder")
	require.NoError(t, err)
}

func TestLoginAbandonedRequest(t *testing.T) {
	f := newFixture(t)
	f.user(t, "a@b.com", "secret", domain.RoleUser)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := f.sessions.Login(ctx, "a@b.com", "secret")
	require.ErrorIs(t, err, context.Canceled)
}

func TestResolveExpiryBoundary(t *testing.T) {
	f := newFixture(t)
	f.user(t, "a@b.com", "secret", domain.RoleUser)

	issued := f.now
	sess, err := f.sessions.Login(t.Context(), "a@b.com", "secret")
	require.NoError(t, err)

	f.now = issued.Add(time.Hour - time.Second)
	_, err = f.sessions.Resolve(t.Context(), sess.Token)
	require.NoError(t, err)

	f.now = issued.Add(time.Hour)
	_, err = f.sessions.Resolve(t.Context(), sess.Token)
	require.ErrorIs(t, err, service.ErrExpiredToken)

	f.now = issued.Add(time.Hour + time.Second)
	_, err = f.sessions.Resolve(t.Context(), sess.Token)
	require.ErrorIs(t, err, service.ErrExpiredToken)
}

func TestResolveRejectsTamperedTokens(t *testing.T) {
	f := newFixture(t)
	f.user(t, "a@b.com", "secret", domain.RoleUser)

	sess, err := f.sessions.Login(t.Context(), "a@b.com", "secret")
	require.NoError(t, err)

	t.Run("every byte", func(t *testing.T) {
		for i := range len(sess.Token) {
			b := []byte(sess.Token)
			if b[i] == 'A' {
				b[i] = 'B'
			} else {
				b[i] = 'A'
			}
			_, err := f.sessions.Resolve(t.Context(), string(b))
			require.Error(t, err, "mutation at byte %d accepted", i)
		}
	})

	t.Run("signature", func(t *testing.T) {
		head := sess.Token[:strings.LastIndex(sess.Token, ".")+1]
		_, err := f.sessions.Resolve(t.Context(), head+"c2lnbmF0dXJlLXRoYXQtZG9lcy1ub3QtbWF0Y2gtYXQtYWxs")
		require.ErrorIs(t, err, service.ErrBadSignature)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := f.sessions.Resolve(t.Context(), "not-a-token")
		require.ErrorIs(t, err, service.ErrMalformedToken)
	})
}

func TestResolveUnknownSubject(t *testing.T) {
	f := newFixture(t)

	claims := jwtx.NewSessionClaims("01J000000000000000000GHOST", "storefront", time.Hour, f.now)
	token, err := f.sessions.Signer.Sign(claims)
	require.NoError(t, err)

	_, err = f.sessions.Resolve(t.Context(), token)
	require.ErrorIs(t, err, service.ErrUnknownSubject)
}

func TestResolveSeesRoleChangesImmediately(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "a@b.com", "secret", domain.RoleUser)

	sess, err := f.sessions.Login(t.Context(), "a@b.com", "secret")
	require.NoError(t, err)

	_, err = f.users.UpdateRole(t.Context(), u.ID, domain.RoleAdmin)
	require.NoError(t, err)

	id, err := f.sessions.Resolve(t.Context(), sess.Token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, id.Role)

	require.NoError(t, f.users.Delete(t.Context(), u.ID))
	_, err = f.sessions.Resolve(t.Context(), sess.Token)
	require.ErrorIs(t, err, service.ErrUnknownSubject)
}

func TestStoreUnavailable(t *testing.T) {
	f := newFixture(t)
	f.user(t, "a@b.com", "secret", domain.RoleUser)

	sess, err := f.sessions.Login(t.Context(), "a@b.com", "secret")
	require.NoError(t, err)

	require.NoError(t, f.store.Close())

	_, err = f.sessions.Resolve(t.Context(), sess.Token)
	require.ErrorIs(t, err, service.ErrStoreUnavailable)

	_, err = f.sessions.Login(t.Context(), "a@b.com", "secret")
	require.ErrorIs(t, err, service.ErrStoreUnavailable)
}
