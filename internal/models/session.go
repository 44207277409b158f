package models

import "time"

// Session is a persisted sign-in. It survives process restarts so clients
// stay signed in across reloads.
type Session struct {
	Token     string    `gorm:"primaryKey;type:varchar(64)"`
	UserID    string    `gorm:"index;not null;type:varchar(36)"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}

// PasswordReset holds a hashed one-time code sent out of band.
type PasswordReset struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"index;not null;type:varchar(36)"`
	CodeHash  string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Attempts  int       `gorm:"not null;default:0"`
	Used      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}
