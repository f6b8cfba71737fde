package app

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"SESSION_SECRET", "SESSION_TTL", "SESSION_ISSUER", "SESSION_COOKIE_NAME",
		"SESSION_COOKIE_SECURE", "SESSION_LOOKUP_TIMEOUT", "DATABASE_FILE", "PORT",
		"RATELIMIT_STRICT_REQUESTS", "RATELIMIT_STRICT_WINDOW_SEC", "RATELIMIT_STRICT_BURST",
	} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	require.Empty(t, cfg.SessionSecret)
	require.Equal(t, time.Hour, cfg.SessionTTL)
	require.Equal(t, "storefront", cfg.Issuer)
	require.Equal(t, "jwt", cfg.CookieName)
	require.False(t, cfg.CookieSecure)
	require.Equal(t, 5*time.Second, cfg.LookupTimeout)
	require.Equal(t, "storefront.db", cfg.DatabaseFile)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, httpx.StrictLimit, cfg.StrictLimit)

	require.ErrorIs(t, cfg.Validate(), ErrMissingSecret)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("SESSION_ISSUER", "shop")
	t.Setenv("SESSION_COOKIE_NAME", "sid")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("SESSION_LOOKUP_TIMEOUT", "2")
	t.Setenv("PORT", "9090")
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "10")
	t.Setenv("RATELIMIT_STRICT_BURST", "3")

	cfg := LoadConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "s3cret", cfg.SessionSecret)
	require.Equal(t, 15*time.Minute, cfg.SessionTTL)
	require.Equal(t, "shop", cfg.Issuer)
	require.Equal(t, "sid", cfg.CookieName)
	require.True(t, cfg.CookieSecure)
	require.Equal(t, 2*time.Second, cfg.LookupTimeout)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 10, cfg.StrictLimit.RequestsPerWindow)
	require.Equal(t, 3, cfg.StrictLimit.Burst)
	require.Equal(t, httpx.StrictLimit.Window, cfg.StrictLimit.Window)
}

func TestLoadConfigIgnoresGarbage(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("SESSION_COOKIE_SECURE", "maybe")
	t.Setenv("PORT", "eighty")

	cfg := LoadConfig()
	require.Equal(t, time.Hour, cfg.SessionTTL)
	require.False(t, cfg.CookieSecure)
	require.Equal(t, 8080, cfg.Port)
}

func TestValidateProdNeedsSeedPassword(t *testing.T) {
	cfg := Config{SessionSecret: "x", SessionTTL: time.Hour, Env: "prod", SeedAdminEmail: "admin@b.com"}
	require.ErrorIs(t, cfg.Validate(), ErrSeedPasswordRequired)

	cfg.SeedAdminPassword = "chosen"
	require.NoError(t, cfg.Validate())

	cfg = Config{SessionSecret: "x", SessionTTL: time.Hour, Env: "dev", SeedAdminEmail: "admin@b.com"}
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveTTL(t *testing.T) {
	cfg := Config{SessionSecret: "x", SessionTTL: 0}
	require.Error(t, cfg.Validate())
}
