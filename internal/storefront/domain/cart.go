package domain

import "time"

type Cart struct {
	ID        string
	OwnerID   string
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartItem struct {
	ProductID string
	Quantity  int
}
