package models

import "time"

type User struct {
	ID         uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	Email      string            `gorm:"unique;not null" json:"email"`
	Password   string            `gorm:"not null" json:"-"`
	Name       string            `json:"name"`
	Contact    string            `json:"contact"`
	Address    string            `json:"address"`
	IsAdmin    bool              `gorm:"default:false" json:"is_admin"`
	Verified   bool              `gorm:"default:false" json:"verified"`
	Membership MembershipDetails `gorm:"embedded;embeddedPrefix:membership_" json:"membership_details"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// MembershipDetails is embedded in User the same way Address embeds into
// the account record: one membership per member, no join needed on read.
type MembershipDetails struct {
	Type       string     `json:"type"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	Status     string     `gorm:"type:VARCHAR(20)" json:"status"` // "Active" / "Expired"
	PaidByUser bool       `gorm:"default:false" json:"paid_by_user"`
	PaymentID  string     `json:"payment_id"`
}

const (
	MembershipActive  = "Active"
	MembershipExpired = "Expired"
)

// ExpiredAt reports whether the membership should be flipped to Expired.
// The daily sweep uses the same predicate in SQL; this is the in-memory twin.
func (m MembershipDetails) ExpiredAt(now time.Time) bool {
	return m.Status == MembershipActive && m.EndDate != nil && m.EndDate.Before(now)
}

// OTP is a short-lived email verification code issued at registration.
type OTP struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"index;not null"`
	Code      string `gorm:"not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
