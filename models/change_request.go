package models

import "time"

// ChangeRequest holds profile edits a member proposed and an admin has not yet
// acted on. The unique index on UserID backs the one-pending-request-per-user
// rule; the handler pre-check alone would be race-prone.
type ChangeRequest struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Name      *string   `json:"name,omitempty"`
	Contact   *string   `json:"contact,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
