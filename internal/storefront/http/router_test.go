package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	sfhttp "github.com/aussiebroadwan/storefront/internal/storefront/http"
	"github.com/aussiebroadwan/storefront/internal/storefront/metrics"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// fixture is a fully routed server over an in-memory store, with a clock the
// test can move.
type fixture struct {
	store    *sqlite.Store
	now      time.Time
	metrics  *metrics.Metrics
	router   *sfhttp.Router
	users    *service.UserService
	products *service.ProductService
}

type fixtureOption func(*sfhttp.Router)

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	f := &fixture{store: st, now: time.Unix(1700000000, 0), metrics: metrics.New()}
	clock := func() time.Time { return f.now }

	signer, err := jwtx.NewHS256Signer(testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewHS256Verifier(testSecret, jwtx.VerifyOptions{Issuer: "storefront", Now: clock})
	require.NoError(t, err)

	f.users = &service.UserService{Store: st}
	f.products = &service.ProductService{Store: st}

	r := sfhttp.NewRouter("test", st, f.metrics, slogx.Discard())
	r.SessionService = &service.SessionService{
		Store:    st,
		Signer:   signer,
		Verifier: verifier,
		Issuer:   "storefront",
		TTL:      time.Hour,
		Now:      clock,
	}
	r.UserService = f.users
	r.ProductService = f.products
	r.CartService = &service.CartService{Store: st}
	r.CredentialLimit = httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
	for _, opt := range opts {
		opt(r)
	}
	r.ApplyRoutes()

	f.router = r
	return f
}

func (f *fixture) api() *apitest.APITest {
	return apitest.New().Handler(f.router)
}

func (f *fixture) seedUser(t *testing.T, email, password string, role domain.Role) domain.User {
	t.Helper()
	u, err := f.users.Create(t.Context(), service.NewUser{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     email,
		Age:       40,
		Password:  password,
		Role:      role,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) seedProduct(t *testing.T, code, category string, price int64) domain.Product {
	t.Helper()
	p, err := f.products.Create(t.Context(), service.NewProduct{
		Title:       "Item " + code,
		Description: "An item",
		Code:        code,
		Price:       price,
		Stock:       3,
		Category:    category,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) login(t *testing.T, email, password string) string {
	t.Helper()
	var out storefrontsdk.LoginResponse
	f.api().
		Post("/api/sessions/login").
		JSON(`{"email":"` + email + `","password":"` + password + `"}`).
		Expect(t).
		Status(http.StatusOK).
		End().
		JSON(&out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

// do sends a request straight through the router, for assertions apitest
// does not cover well (raw bytes, cookie attributes, rate limits).
func (f *fixture) do(method, target, body string, header http.Header) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func bearer(token string) string { return "Bearer " + token }

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t)
	f.api().
		Get("/api/nope").
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestMethodNotAllowed(t *testing.T) {
	f := newFixture(t)
	f.api().
		Get("/api/sessions/login").
		Expect(t).
		Status(http.StatusMethodNotAllowed).
		End()
}
