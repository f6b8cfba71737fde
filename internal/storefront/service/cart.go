package service

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/idx"
)

// CartService scopes every cart to its owner. Admins may touch any cart.
type CartService struct {
	Store store.Store
}

func canAccess(caller domain.Identity, c domain.Cart) error {
	if caller.Role == domain.RoleAdmin || (caller.UserID != "" && caller.UserID == c.OwnerID) {
		return nil
	}
	return fmt.Errorf("%w: not the cart owner", ErrInsufficientRole)
}

// loadCart fetches the cart through repo and checks the caller may use it.
func loadCart(ctx context.Context, carts store.Carts, caller domain.Identity, cartID string) (domain.Cart, error) {
	c, err := carts.GetCart(ctx, cartID)
	if err != nil {
		return domain.Cart{}, mapStoreErr(err)
	}
	if err := canAccess(caller, c); err != nil {
		return domain.Cart{}, err
	}
	return c, nil
}

// Create opens an empty cart owned by the caller.
func (s *CartService) Create(ctx context.Context, caller domain.Identity) (domain.Cart, error) {
	c := domain.Cart{ID: idx.New().String(), OwnerID: caller.UserID}
	if err := s.Store.Carts().CreateCart(ctx, c); err != nil {
		return domain.Cart{}, mapStoreErr(err)
	}
	return s.Store.Carts().GetCart(ctx, c.ID)
}

func (s *CartService) Get(ctx context.Context, caller domain.Identity, cartID string) (domain.Cart, error) {
	return loadCart(ctx, s.Store.Carts(), caller, cartID)
}

// AddProduct bumps the product's quantity by one.
func (s *CartService) AddProduct(ctx context.Context, caller domain.Identity, cartID, productID string) (domain.Cart, error) {
	var out domain.Cart
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := loadCart(ctx, tx.Carts(), caller, cartID); err != nil {
			return err
		}
		if _, err := tx.Products().GetProduct(ctx, productID); err != nil {
			return mapStoreErr(err)
		}
		if err := tx.Carts().AddItem(ctx, cartID, productID); err != nil {
			return mapStoreErr(err)
		}
		c, err := tx.Carts().GetCart(ctx, cartID)
		out = c
		return err
	})
	return out, err
}

func (s *CartService) RemoveProduct(ctx context.Context, caller domain.Identity, cartID, productID string) (domain.Cart, error) {
	var out domain.Cart
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := loadCart(ctx, tx.Carts(), caller, cartID); err != nil {
			return err
		}
		if err := tx.Carts().RemoveItem(ctx, cartID, productID); err != nil {
			return mapStoreErr(err)
		}
		c, err := tx.Carts().GetCart(ctx, cartID)
		out = c
		return err
	})
	return out, err
}

// Replace swaps the cart contents. Repeated products are merged and every
// quantity must be positive.
func (s *CartService) Replace(ctx context.Context, caller domain.Identity, cartID string, items []domain.CartItem) (domain.Cart, error) {
	merged := make([]domain.CartItem, 0, len(items))
	pos := make(map[string]int, len(items))
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return domain.Cart{}, fmt.Errorf("%w: every item needs a product and a positive quantity", ErrInvalidInput)
		}
		if i, ok := pos[it.ProductID]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		pos[it.ProductID] = len(merged)
		merged = append(merged, it)
	}

	var out domain.Cart
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := loadCart(ctx, tx.Carts(), caller, cartID); err != nil {
			return err
		}
		if err := tx.Carts().ReplaceItems(ctx, cartID, merged); err != nil {
			return mapStoreErr(err)
		}
		c, err := tx.Carts().GetCart(ctx, cartID)
		out = c
		return err
	})
	return out, err
}
