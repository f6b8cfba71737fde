package storefrontsdk

import "time"

// MessageResponse is the body of every error and of plain acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Sessions
// ============================================================================

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /api/sessions/login. The same token is
// also set as an HTTP-only cookie.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// IdentityResponse is the authenticated caller, from GET /api/sessions/current.
type IdentityResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RegisterRequest is the public sign-up body. It has no role field, new
// accounts are always "user".
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Password  string `json:"password"`
}

// ============================================================================
// Users
// ============================================================================

type UserResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest is the admin variant of RegisterRequest.
type CreateUserRequest struct {
	RegisterRequest
	Role string `json:"role"`
}

// UpdateUserRequest edits a user's profile. Omitted fields keep their
// current value.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Age       *int    `json:"age,omitempty"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// ============================================================================
// Products
// ============================================================================

type ProductResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	Price       int64     `json:"price"`
	Status      bool      `json:"status"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	Thumbnails  []string  `json:"thumbnails"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateProductRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Code        string   `json:"code"`
	Price       int64    `json:"price"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Thumbnails  []string `json:"thumbnails,omitempty"`
	Status      *bool    `json:"status,omitempty"`
}

type ProductCreatedResponse struct {
	Status  string          `json:"status"`
	Product ProductResponse `json:"product"`
}

// ProductPageResponse is one page of GET /api/products.
type ProductPageResponse struct {
	Status      string            `json:"status"`
	Payload     []ProductResponse `json:"payload"`
	TotalPages  int               `json:"totalPages"`
	PrevPage    *int              `json:"prevPage"`
	NextPage    *int              `json:"nextPage"`
	Page        int               `json:"page"`
	HasPrevPage bool              `json:"hasPrevPage"`
	HasNextPage bool              `json:"hasNextPage"`
	PrevLink    *string           `json:"prevLink"`
	NextLink    *string           `json:"nextLink"`
}

// ListProductsOptions maps onto the listing query string. Zero values are
// left out.
type ListProductsOptions struct {
	Limit int
	Page  int
	Sort  string // "asc" or "desc" by price
	Query string // category, or "true"/"false" for status
}

// ============================================================================
// Carts
// ============================================================================

type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CartResponse struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"owner_id"`
	Products  []CartItem `json:"products"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartCreatedResponse struct {
	Status string       `json:"status"`
	Cart   CartResponse `json:"cart"`
}

type ReplaceCartRequest struct {
	Products []CartItem `json:"products"`
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
