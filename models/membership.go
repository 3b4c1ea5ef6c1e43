package models

import (
	"errors"
	"time"
)

// MembershipPlan is a named duration/price tier. The duration table is fixed;
// plans created by admins must use one of the known types.
type MembershipPlan struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Type         string    `gorm:"unique;not null" json:"type"`
	DurationDays int       `gorm:"not null" json:"duration_days"`
	Price        float64   `gorm:"not null" json:"price"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	PlanMonthly    = "MONTHLY"
	PlanTwoMonth   = "TWO-MONTH"
	PlanQuarterly  = "QUARTERLY"
	PlanFourMonth  = "FOUR-MONTH"
	PlanHalfYearly = "HALF-YEARLY"
	PlanYearly     = "YEARLY"
)

var planOffsetDays = map[string]int{
	PlanMonthly:    30,
	PlanTwoMonth:   60,
	PlanQuarterly:  90,
	PlanFourMonth:  120,
	PlanHalfYearly: 180,
	PlanYearly:     360,
}

var ErrUnknownPlanType = errors.New("unknown membership plan type")

// PlanOffsetDays returns the fixed day offset for a plan type.
func PlanOffsetDays(planType string) (int, error) {
	days, ok := planOffsetDays[planType]
	if !ok {
		return 0, ErrUnknownPlanType
	}
	return days, nil
}

// MembershipEndDate computes expiry as start + fixed offset. This single
// arithmetic rule is the whole proration model.
func MembershipEndDate(planType string, start time.Time) (time.Time, error) {
	days, err := PlanOffsetDays(planType)
	if err != nil {
		return time.Time{}, err
	}
	return start.AddDate(0, 0, days), nil
}
