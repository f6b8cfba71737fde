package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories so a Tx can hand out the same repos bound to the
// transaction.
type Store interface {
	Users() Users
	Products() Products
	Carts() Carts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Inside fn only
	// use the tx argument.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID is the per-request lookup behind authentication.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login. Emails match case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the caller via ULID).
	// A duplicate email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsers returns every user, oldest first.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdateUser overwrites the profile fields (names, email, age) of u.ID.
	// The password hash and role are left alone. A clash with another
	// user's email yields ErrAlreadyExists.
	UpdateUser(ctx context.Context, u domain.User) error

	// UpdateRole changes a user's role and bumps updated_at.
	UpdateRole(ctx context.Context, userID string, role domain.Role) error

	// DeleteUser cascades to the user's carts.
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Products interface {
	GetProduct(ctx context.Context, id string) (domain.Product, error)

	// ListProducts returns one page of matching products together with the
	// total number of matches.
	ListProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int, error)

	// CreateProduct inserts a product. A duplicate code yields ErrAlreadyExists.
	CreateProduct(ctx context.Context, p domain.Product) error

	DeleteProduct(ctx context.Context, id string) error
}

type Carts interface {
	// GetCart returns the cart with its items.
	GetCart(ctx context.Context, id string) (domain.Cart, error)

	CreateCart(ctx context.Context, c domain.Cart) error

	// AddItem increments the quantity of productID in the cart by one,
	// inserting it with quantity 1 if absent.
	AddItem(ctx context.Context, cartID, productID string) error

	// RemoveItem drops productID from the cart. Removing an absent item is
	// not an error.
	RemoveItem(ctx context.Context, cartID, productID string) error

	// ReplaceItems swaps the whole item list. Run it inside a transaction.
	ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) error
}
