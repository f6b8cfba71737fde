package storefrontsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Session is an authenticated client. Tokens are not refreshed; once one
// expires every call returns a 401 APIError and the caller logs in again.
type Session struct {
	client *SDKClient
	token  string
}

// Token returns the bearer token this session sends.
func (s *Session) Token() string { return s.token }

func (s *Session) call(ctx context.Context, method, path string, body, out any, expected int) error {
	resp, err := s.client.doRequest(ctx, method, path, s.token, body)
	if err != nil {
		return err
	}
	return decodeJSON(resp, out, expected)
}

// Current returns the identity the token resolves to.
func (s *Session) Current(ctx context.Context) (*IdentityResponse, error) {
	var out IdentityResponse
	if err := s.call(ctx, http.MethodGet, "/api/sessions/current", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Products
// ============================================================================

func (s *Session) ListProducts(ctx context.Context, opts ListProductsOptions) (*ProductPageResponse, error) {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	if opts.Query != "" {
		q.Set("query", opts.Query)
	}
	path := "/api/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out ProductPageResponse
	if err := s.call(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	var out ProductResponse
	if err := s.call(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct requires the admin role.
func (s *Session) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	var out ProductCreatedResponse
	if err := s.call(ctx, http.MethodPost, "/api/products", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// DeleteProduct requires the admin role.
func (s *Session) DeleteProduct(ctx context.Context, id string) error {
	return s.call(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil, http.StatusOK)
}

// ============================================================================
// Carts
// ============================================================================

func (s *Session) CreateCart(ctx context.Context) (*CartResponse, error) {
	var out CartCreatedResponse
	if err := s.call(ctx, http.MethodPost, "/api/carts", nil, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

func (s *Session) GetCart(ctx context.Context, cartID string) (*CartResponse, error) {
	return s.cart(ctx, http.MethodGet, "/api/carts/"+url.PathEscape(cartID), nil)
}

// AddToCart increments the product's quantity by one.
func (s *Session) AddToCart(ctx context.Context, cartID, productID string) (*CartResponse, error) {
	return s.cart(ctx, http.MethodPost, cartItemPath(cartID, productID), nil)
}

func (s *Session) RemoveFromCart(ctx context.Context, cartID, productID string) (*CartResponse, error) {
	return s.cart(ctx, http.MethodDelete, cartItemPath(cartID, productID), nil)
}

func (s *Session) ReplaceCart(ctx context.Context, cartID string, items []CartItem) (*CartResponse, error) {
	return s.cart(ctx, http.MethodPut, "/api/carts/"+url.PathEscape(cartID), ReplaceCartRequest{Products: items})
}

func (s *Session) cart(ctx context.Context, method, path string, body any) (*CartResponse, error) {
	var out CartResponse
	if err := s.call(ctx, method, path, body, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func cartItemPath(cartID, productID string) string {
	return "/api/carts/" + url.PathEscape(cartID) + "/products/" + url.PathEscape(productID)
}

// ============================================================================
// Users (admin)
// ============================================================================

func (s *Session) ListUsers(ctx context.Context) ([]UserResponse, error) {
	var out []UserResponse
	if err := s.call(ctx, http.MethodGet, "/api/users", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	var out UserResponse
	if err := s.call(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	var out UserResponse
	if err := s.call(ctx, http.MethodPost, "/api/users", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	var out UserResponse
	if err := s.call(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateUserRole(ctx context.Context, id, role string) (*UserResponse, error) {
	var out UserResponse
	path := "/api/users/" + url.PathEscape(id) + "/role"
	if err := s.call(ctx, http.MethodPut, path, UpdateRoleRequest{Role: role}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteUser(ctx context.Context, id string) error {
	return s.call(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil, nil, http.StatusOK)
}
