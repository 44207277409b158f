package models

import "time"

// AccessCode is a single-use token granting a tier, and optionally the admin
// role, without a payment request.
type AccessCode struct {
	Code       string     `gorm:"primaryKey;type:varchar(64)" json:"code"`
	Tier       Tier       `gorm:"type:varchar(16);not null" json:"tier"`
	AdminGrant bool       `gorm:"not null;default:false" json:"admin_grant"`
	Used       bool       `gorm:"not null;default:false;index" json:"used"`
	UsedBy     *string    `gorm:"type:varchar(36)" json:"used_by,omitempty"`
	UsedAt     *time.Time `json:"used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
