package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// fixed whole-second clock so exp lands exactly on issue + ttl
var issuedAt = time.Unix(1700000000, 0).UTC()

func newPair(t *testing.T, now func() time.Time) (*jwtx.HS256Signer, *jwtx.HS256Verifier) {
	t.Helper()

	signer, err := jwtx.NewHS256Signer(testSecret)
	require.NoError(t, err)

	verifier, err := jwtx.NewHS256Verifier(testSecret, jwtx.VerifyOptions{Issuer: "storefront", Now: now})
	require.NoError(t, err)

	return signer, verifier
}

func issue(t *testing.T, signer jwtx.Signer, ttl time.Duration) string {
	t.Helper()
	token, err := signer.Sign(jwtx.NewSessionClaims("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "storefront", ttl, issuedAt))
	require.NoError(t, err)
	return token
}

func at(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestMissingSecret(t *testing.T) {
	_, err := jwtx.NewHS256Signer(nil)
	require.ErrorIs(t, err, jwtx.ErrMissingSecret)

	_, err = jwtx.NewHS256Verifier([]byte{}, jwtx.VerifyOptions{})
	require.ErrorIs(t, err, jwtx.ErrMissingSecret)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	signer, verifier := newPair(t, at(issuedAt.Add(time.Minute)))
	require.Equal(t, "HS256", signer.Alg())

	token := issue(t, signer, time.Hour)
	require.Len(t, strings.Split(token, "."), 3)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", claims.Subject)
	require.Equal(t, issuedAt.Add(time.Hour), claims.Expiry())
}

func TestSignRejectsIncompleteClaims(t *testing.T) {
	signer, _ := newPair(t, nil)

	_, err := signer.Sign(jwtx.Claims{})
	require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
}

func TestExpiryBoundary(t *testing.T) {
	signer, _ := newPair(t, nil)
	token := issue(t, signer, time.Hour)

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"just before expiry", issuedAt.Add(time.Hour - time.Second), nil},
		{"well before expiry", issuedAt, nil},
		{"at expiry", issuedAt.Add(time.Hour), jwtx.ErrExpired},
		{"just after expiry", issuedAt.Add(time.Hour + time.Second), jwtx.ErrExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, verifier := newPair(t, at(tt.now))
			_, err := verifier.Verify(token)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWrongSecret(t *testing.T) {
	signer, _ := newPair(t, nil)
	token := issue(t, signer, time.Hour)

	other, err := jwtx.NewHS256Verifier([]byte("another-secret"), jwtx.VerifyOptions{Now: at(issuedAt)})
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestEveryByteMutationFails(t *testing.T) {
	signer, verifier := newPair(t, at(issuedAt.Add(time.Minute)))
	token := issue(t, signer, time.Hour)

	for i := range len(token) {
		replacement := byte('A')
		if token[i] == 'A' {
			replacement = 'B'
		}
		mutated := token[:i] + string(replacement) + token[i+1:]

		_, err := verifier.Verify(mutated)
		require.Error(t, err, "mutation at byte %d was accepted", i)
	}
}

func TestTamperedExpiry(t *testing.T) {
	signer, verifier := newPair(t, at(issuedAt.Add(2*time.Hour)))
	token := issue(t, signer, time.Hour)

	// Re-sign a longer-lived payload with a different key and graft the
	// original header on, the MAC must not match.
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwtx.NewSessionClaims("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "storefront", 24*time.Hour, issuedAt),
	).SignedString([]byte("attacker"))
	require.NoError(t, err)

	orig := strings.Split(token, ".")
	fake := strings.Split(forged, ".")
	_, err = verifier.Verify(orig[0] + "." + fake[1] + "." + orig[2])
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestAlgorithmConfusion(t *testing.T) {
	_, verifier := newPair(t, at(issuedAt))
	claims := jwtx.NewSessionClaims("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "storefront", time.Hour, issuedAt)

	t.Run("alg none", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("HS512 with the same secret", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})
}

func TestMalformed(t *testing.T) {
	_, verifier := newPair(t, at(issuedAt))

	for _, token := range []string{"", "abc", "a.b", "a.b.c.d", "!!!.???.***"} {
		_, err := verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrMalformed, "token %q", token)
	}

	t.Run("missing exp", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "iss": "storefront"}).
			SignedString(testSecret)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("missing sub", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": issuedAt.Add(time.Hour).Unix(),
			"iss": "storefront",
		}).SignedString(testSecret)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestIssuerMismatch(t *testing.T) {
	signer, verifier := newPair(t, at(issuedAt))

	token, err := signer.Sign(jwtx.NewSessionClaims("u1", "someone-else", time.Hour, issuedAt))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}
