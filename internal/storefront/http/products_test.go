package http_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"
)

func TestUserDeniedAdminOperation(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "user@b.com", "pw", domain.RoleUser)
	f.seedUser(t, "admin@b.com", "pw", domain.RoleAdmin)
	userToken := f.login(t, "user@b.com", "pw")
	adminToken := f.login(t, "admin@b.com", "pw")

	body := `{"title":"Lamp","description":"Desk lamp","code":"L-1","price":2500,"stock":4,"category":"home"}`

	f.api().
		Post("/api/products").
		Header("Authorization", bearer(userToken)).
		JSON(body).
		Expect(t).
		Status(http.StatusForbidden).
		Body(`{"message":"forbidden"}`).
		End()

	f.api().
		Post("/api/products").
		Header("Authorization", bearer(adminToken)).
		JSON(body).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.status", "success")).
		Assert(jsonpath.Equal("$.product.code", "L-1")).
		Assert(jsonpath.Equal("$.product.price", float64(2500))).
		Assert(jsonpath.Equal("$.product.status", true)).
		Assert(jsonpath.Len("$.product.thumbnails", 0)).
		End()
}

func TestProductsRequireAuthentication(t *testing.T) {
	f := newFixture(t)
	f.api().
		Get("/api/products").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestCreateProductValidation(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "admin@b.com", "pw", domain.RoleAdmin)
	token := f.login(t, "admin@b.com", "pw")

	f.api().
		Post("/api/products").
		Header("Authorization", bearer(token)).
		JSON(`{"title":"Lamp","code":"L-1","price":2500}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"message":"all fields are required"}`).
		End()

	f.seedProduct(t, "L-1", "home", 100)
	f.api().
		Post("/api/products").
		Header("Authorization", bearer(token)).
		JSON(`{"title":"Lamp","description":"d","code":"L-1","price":2500,"stock":1,"category":"home"}`).
		Expect(t).
		Status(http.StatusConflict).
		End()
}

func TestListProductsPaging(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "a@b.com", "secret", domain.RoleUser)
	token := f.login(t, "a@b.com", "secret")

	f.seedProduct(t, "P-1", "books", 300)
	f.seedProduct(t, "P-2", "books", 100)
	f.seedProduct(t, "P-3", "games", 200)

	var first storefrontsdk.ProductPageResponse
	f.api().
		Get("/api/products").
		Query("limit", "2").
		Query("sort", "asc").
		Header("Authorization", bearer(token)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.status", "success")).
		Assert(jsonpath.Len("$.payload", 2)).
		Assert(jsonpath.Equal("$.totalPages", float64(2))).
		Assert(jsonpath.Equal("$.page", float64(1))).
		Assert(jsonpath.Equal("$.hasPrevPage", false)).
		Assert(jsonpath.Equal("$.hasNextPage", true)).
		Assert(jsonpath.Equal("$.nextPage", float64(2))).
		End().
		JSON(&first)

	require.Nil(t, first.PrevPage)
	require.Nil(t, first.PrevLink)
	require.NotNil(t, first.NextLink)
	require.Equal(t, "/api/products?limit=2&page=2&sort=asc", *first.NextLink)
	require.Equal(t, []int64{100, 200}, []int64{first.Payload[0].Price, first.Payload[1].Price})

	f.api().
		Get("/api/products").
		Query("limit", "2").
		Query("page", "2").
		Query("sort", "asc").
		Header("Authorization", bearer(token)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$.payload", 1)).
		Assert(jsonpath.Equal("$.payload[0].price", float64(300))).
		Assert(jsonpath.Equal("$.hasPrevPage", true)).
		Assert(jsonpath.Equal("$.prevLink", "/api/products?limit=2&page=1&sort=asc")).
		Assert(jsonpath.Equal("$.hasNextPage", false)).
		End()

	t.Run("category filter", func(t *testing.T) {
		f.api().
			Get("/api/products").
			Query("query", "games").
			Header("Authorization", bearer(token)).
			Expect(t).
			Status(http.StatusOK).
			Assert(jsonpath.Len("$.payload", 1)).
			Assert(jsonpath.Equal("$.payload[0].code", "P-3")).
			End()
	})

	t.Run("page beyond the last", func(t *testing.T) {
		f.api().
			Get("/api/products").
			Query("limit", "10").
			Query("page", "9223372036854775807").
			Header("Authorization", bearer(token)).
			Expect(t).
			Status(http.StatusOK).
			Assert(jsonpath.Len("$.payload", 0)).
			Assert(jsonpath.Equal("$.hasNextPage", false)).
			End()
	})

	t.Run("bad sort", func(t *testing.T) {
		f.api().
			Get("/api/products").
			Query("sort", "sideways").
			Header("Authorization", bearer(token)).
			Expect(t).
			Status(http.StatusBadRequest).
			End()
	})
}

func TestGetAndDeleteProduct(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "admin@b.com", "pw", domain.RoleAdmin)
	token := f.login(t, "admin@b.com", "pw")
	p := f.seedProduct(t, "P-1", "books", 300)

	f.api().
		Get("/api/products/"+p.ID).
		Header("Authorization", bearer(token)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.id", p.ID)).
		End()

	f.api().
		Delete("/api/products/"+p.ID).
		Header("Authorization", bearer(token)).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"message":"product deleted"}`).
		End()

	f.api().
		Get("/api/products/"+p.ID).
		Header("Authorization", bearer(token)).
		Expect(t).
		Status(http.StatusNotFound).
		Body(`{"message":"not found"}`).
		End()
}
