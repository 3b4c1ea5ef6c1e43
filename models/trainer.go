package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Trainer struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `gorm:"unique;not null" json:"email"`
	Contact     string    `json:"contact"`
	Speciality  string    `json:"speciality"`
	MonthlyFee  float64   `json:"monthly_fee"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AdminAction is the status driving the trainer-assignment lifecycle.
type AdminAction string

const (
	ActionPending      AdminAction = "PENDING"
	ActionRequestToPay AdminAction = "REQUEST-TO-PAY"
	ActionAssigned     AdminAction = "ASSIGNED"
	ActionNotAssigned  AdminAction = "NOT-ASSIGNED"
)

// ParseAdminAction maps a request string to an AdminAction.
func ParseAdminAction(s string) (AdminAction, error) {
	switch AdminAction(strings.ToUpper(strings.TrimSpace(s))) {
	case ActionPending:
		return ActionPending, nil
	case ActionRequestToPay:
		return ActionRequestToPay, nil
	case ActionAssigned:
		return ActionAssigned, nil
	case ActionNotAssigned:
		return ActionNotAssigned, nil
	default:
		return "", errors.New("invalid admin action")
	}
}

// TrainerAssignment is a first-class record: each member/trainer relationship
// has a stable id, so transitions address a row instead of matching an
// embedded entry by field equality.
type TrainerAssignment struct {
	ID            uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	TrainerID     uint        `gorm:"index;not null" json:"trainer_id"`
	Trainer       Trainer     `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
	UserID        uint        `gorm:"index;not null" json:"user_id"`
	MemberName    string      `json:"member_name"`
	MemberEmail   string      `json:"member_email"`
	MemberContact string      `json:"member_contact"`
	AdminActions  AdminAction `gorm:"type:VARCHAR(20);default:'PENDING'" json:"admin_actions"`
	PaidByUser    bool        `gorm:"default:false" json:"paid_by_user"`
	PaymentID     string      `json:"payment_id"`
	StartDate     *time.Time  `json:"start_date"`
	EndDate       *time.Time  `json:"end_date"`
	ExtraPayment  float64     `json:"extra_payment"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// CanTransition validates an assignment status change. ASSIGNED is reachable
// only from REQUEST-TO-PAY after the member has paid; NOT-ASSIGNED is a valid
// exit from any state.
func CanTransition(from AdminAction, paid bool, to AdminAction) bool {
	if to == ActionNotAssigned {
		return true
	}
	switch from {
	case ActionPending:
		return to == ActionRequestToPay
	case ActionRequestToPay:
		return to == ActionAssigned && paid
	default:
		return false
	}
}

var ErrInvalidTransition = errors.New("invalid assignment transition")

// Transition applies a validated status change in place.
func (a *TrainerAssignment) Transition(to AdminAction) error {
	if !CanTransition(a.AdminActions, a.PaidByUser, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.AdminActions, to)
	}
	a.AdminActions = to
	return nil
}

// Elapsed reports whether the assignment period has already passed, in which
// case removal carries no refund.
func (a *TrainerAssignment) Elapsed(now time.Time) bool {
	return a.EndDate != nil && a.EndDate.Before(now)
}
