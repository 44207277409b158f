package models

import "time"

// RequestStatus is the lifecycle state of a payment request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Terminal reports whether no further transition is allowed.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// PaymentRequest is a user's request to move to a paid tier, confirmed
// manually by an admin.
type PaymentRequest struct {
	ID            string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID        string        `gorm:"index;not null;type:varchar(36)" json:"user_id"`
	RequestedTier Tier          `gorm:"type:varchar(16);not null" json:"requested_tier"`
	Status        RequestStatus `gorm:"type:varchar(16);index;not null;default:pending" json:"status"`
	ResolvedBy    *string       `gorm:"type:varchar(36)" json:"resolved_by,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
