package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrLockUnderflow     = errors.New("release exceeds locked count")
)

type Product struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `json:"description"`
	Price         float64        `gorm:"not null" json:"price"`
	MRP           float64        `json:"mrp"`
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`
	LockedCount   int            `gorm:"not null;default:0" json:"locked_count"`
	Image         string         `json:"image"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Lock reserves count units for an in-flight payment: available stock drops,
// locked rises. The caller holds a row lock and persists the result.
func (p *Product) Lock(count int) error {
	if count <= 0 {
		return errors.New("count must be positive")
	}
	if p.StockQuantity < count {
		return ErrInsufficientStock
	}
	p.StockQuantity -= count
	p.LockedCount += count
	return nil
}

// Release is the inverse of Lock, used when a payment attempt fails or is
// abandoned. A lock is never released implicitly; see the admin release route.
func (p *Product) Release(count int) error {
	if count <= 0 {
		return errors.New("count must be positive")
	}
	if p.LockedCount < count {
		return ErrLockUnderflow
	}
	p.StockQuantity += count
	p.LockedCount -= count
	return nil
}

// ConfirmConsumed finalizes a lock after the order row is persisted. Stock was
// already decremented at lock time, so only the locked counter moves.
func (p *Product) ConfirmConsumed(count int) error {
	if count <= 0 {
		return errors.New("count must be positive")
	}
	if p.LockedCount < count {
		return ErrLockUnderflow
	}
	p.LockedCount -= count
	return nil
}
