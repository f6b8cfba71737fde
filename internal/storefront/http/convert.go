package http

import (
	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

func toIdentityResponse(id domain.Identity) storefrontsdk.IdentityResponse {
	return storefrontsdk.IdentityResponse{
		ID:        id.UserID,
		Email:     id.Email,
		Role:      id.Role.String(),
		FirstName: id.FirstName,
		LastName:  id.LastName,
	}
}

func toUserResponse(u domain.User) storefrontsdk.UserResponse {
	return storefrontsdk.UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Age:       u.Age,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}

func toProductResponse(p domain.Product) storefrontsdk.ProductResponse {
	thumbs := p.Thumbnails
	if thumbs == nil {
		thumbs = []string{}
	}
	return storefrontsdk.ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Code:        p.Code,
		Price:       p.Price,
		Status:      p.Status,
		Stock:       p.Stock,
		Category:    p.Category,
		Thumbnails:  thumbs,
		CreatedAt:   p.CreatedAt,
	}
}

func toCartResponse(c domain.Cart) storefrontsdk.CartResponse {
	items := make([]storefrontsdk.CartItem, len(c.Items))
	for i, it := range c.Items {
		items[i] = storefrontsdk.CartItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return storefrontsdk.CartResponse{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Products:  items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
