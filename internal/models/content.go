package models

import "time"

// WishlistEntry marks an instrument as watched by a user.
type WishlistEntry struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"uniqueIndex:idx_wishlist_user_symbol;not null;type:varchar(36)" json:"user_id"`
	Symbol    string    `gorm:"uniqueIndex:idx_wishlist_user_symbol;not null;type:varchar(16)" json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationEntry subscribes a user to alerts for an instrument.
type NotificationEntry struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"uniqueIndex:idx_notification_user_symbol;not null;type:varchar(36)" json:"user_id"`
	Symbol    string    `gorm:"uniqueIndex:idx_notification_user_symbol;not null;type:varchar(16)" json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
}
