package models

import "time"

// Account is a registered user. The tier column and the admin flag are the
// only entitlement state; both are mutated by the subscription workflow.
type Account struct {
	ID            string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Username      *string    `gorm:"index" json:"username,omitempty"`
	UsernameKey   *string    `gorm:"uniqueIndex;type:varchar(30)" json:"-"` // lowercased Username
	FullName      string     `json:"full_name"`
	PasswordHash  string     `gorm:"not null" json:"-"`
	Tier          Tier       `gorm:"type:varchar(16);not null;default:free" json:"tier"`
	PlanExpiresAt *time.Time `json:"plan_expires_at,omitempty"`
	Lifetime      bool       `gorm:"not null;default:false" json:"lifetime"`
	IsAdmin       bool       `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
