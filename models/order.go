package models

import "time"

const (
	OrderStatusPaid      = "Paid"
	OrderStatusCancelled = "CANCELLED"
)

// CancelRefundFraction is the share of the order total returned on user
// cancellation; the remainder is retained as a cancellation fee.
const CancelRefundFraction = 0.9

// Order is an immutable snapshot taken at payment-verification time. Buyer
// contact fields are denormalized on purpose: the order shows what was known
// at purchase, not the user's current profile. Orders are never hard-deleted.
type Order struct {
	ID           uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      string      `gorm:"uniqueIndex;not null" json:"order_id"` // gateway order id
	PaymentID    string      `json:"payment_id"`
	UserID       uint        `gorm:"index;not null" json:"user_id"`
	BuyerName    string      `json:"buyer_name"`
	BuyerEmail   string      `json:"buyer_email"`
	BuyerContact string      `json:"buyer_contact"`
	Address      string      `json:"address"`
	Items        []OrderItem `gorm:"foreignKey:OrderRow;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount  float64     `json:"total_amount"`
	Status       string      `json:"status"` // "Paid", "CANCELLED", admin delivery states
	RefundID     string      `json:"refund_id,omitempty"`
	RefundAmount float64     `json:"refund_amount,omitempty"`
	RefundedAt   *time.Time  `json:"refunded_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderRow    uint    `gorm:"index" json:"-"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// RefundSplit returns the refunded share of a cancelled order's total and the
// amount the order keeps afterwards.
func RefundSplit(total float64) (refund, remainder float64) {
	refund = total * CancelRefundFraction
	remainder = total - refund
	return refund, remainder
}
