package models

import "time"

// CartItem is one (user, product) row. A user's cart is the set of their rows;
// there is no separate cart header record.
type CartItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID   uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`
	Count       int       `json:"count"`
	AddedAt     time.Time `json:"added_at"`
}

type CartAction int

const (
	CartCreate CartAction = iota
	CartUpdate
	CartDelete
)

// ApplyCartDelta decides what a quantity change does to a cart row. A row that
// would drop to zero or below is deleted, never left at count=0.
func ApplyCartDelta(exists bool, current, delta int) (int, CartAction) {
	if !exists {
		if delta <= 0 {
			return 0, CartDelete
		}
		return delta, CartCreate
	}
	next := current + delta
	if next <= 0 {
		return 0, CartDelete
	}
	return next, CartUpdate
}
