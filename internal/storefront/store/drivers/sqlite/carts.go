package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

type cartsRepo struct {
	db dbtx
}

func (r *cartsRepo) GetCart(ctx context.Context, id string) (domain.Cart, error) {
	var (
		c                    domain.Cart
		createdAt, updatedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, created_at, updated_at FROM carts WHERE id = ?`, id,
	).Scan(&c.ID, &c.OwnerID, &createdAt, &updatedAt)
	if err != nil {
		return domain.Cart{}, mapNotFound(err)
	}
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)

	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, quantity FROM cart_items WHERE cart_id = ? ORDER BY position`, id)
	if err != nil {
		return domain.Cart{}, err
	}
	defer rows.Close()

	c.Items = []domain.CartItem{}
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.ProductID, &it.Quantity); err != nil {
			return domain.Cart{}, err
		}
		c.Items = append(c.Items, it)
	}
	return c, rows.Err()
}

func (r *cartsRepo) CreateCart(ctx context.Context, c domain.Cart) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO carts (id, owner_id, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.OwnerID, toMillis(c.CreatedAt), toMillis(c.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *cartsRepo) touch(ctx context.Context, cartID string) error {
	return expectAffected(r.db.ExecContext(ctx,
		`UPDATE carts SET updated_at = ? WHERE id = ?`, toMillis(time.Now()), cartID))
}

func (r *cartsRepo) AddItem(ctx context.Context, cartID, productID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity, position)
		VALUES (?, ?, 1, (SELECT COALESCE(MAX(position), 0) + 1 FROM cart_items WHERE cart_id = ?))
		ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = quantity + 1`,
		cartID, productID, cartID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return r.touch(ctx, cartID)
}

func (r *cartsRepo) RemoveItem(ctx context.Context, cartID, productID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID); err != nil {
		return err
	}
	return r.touch(ctx, cartID)
}

func (r *cartsRepo) ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return err
	}
	for i, it := range items {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO cart_items (cart_id, product_id, quantity, position) VALUES (?, ?, ?, ?)`,
			cartID, it.ProductID, it.Quantity, i+1,
		)
		if err != nil {
			return mapConstraint(err)
		}
	}
	return r.touch(ctx, cartID)
}
