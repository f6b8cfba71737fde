package service_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// fixture wires services over a fresh in-memory store and a movable clock.
type fixture struct {
	store    *sqlite.Store
	now      time.Time
	sessions *service.SessionService
	users    *service.UserService
	products *service.ProductService
	carts    *service.CartService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	f := &fixture{store: st, now: time.Unix(1700000000, 0)}
	clock := func() time.Time { return f.now }

	signer, err := jwtx.NewHS256Signer(testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewHS256Verifier(testSecret, jwtx.VerifyOptions{Issuer: "storefront", Now: clock})
	require.NoError(t, err)

	f.sessions = &service.SessionService{
		Store:         st,
		Signer:        signer,
		Verifier:      verifier,
		Issuer:        "storefront",
		TTL:           time.Hour,
		LookupTimeout: time.Second,
		Now:           clock,
	}
	f.users = &service.UserService{Store: st}
	f.products = &service.ProductService{Store: st}
	f.carts = &service.CartService{Store: st}
	return f
}

func (f *fixture) user(t *testing.T, email, password string, role domain.Role) domain.User {
	t.Helper()
	u, err := f.users.Create(t.Context(), service.NewUser{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Age:       36,
		Password:  password,
		Role:      role,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) product(t *testing.T, code string, price int64) domain.Product {
	t.Helper()
	p, err := f.products.Create(t.Context(), service.NewProduct{
		Title:       "Widget " + code,
		Description: "A widget",
		Code:        code,
		Price:       price,
		Stock:       5,
		Category:    "widgets",
	})
	require.NoError(t, err)
	return p
}
