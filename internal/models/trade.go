package models

import (
	"time"

	"gorm.io/gorm"
)

// PaperTrade represents a simulated trade made by the AI trader panel.
// Nothing is ever sent to an exchange.
type PaperTrade struct {
	gorm.Model
	UserID        string  `gorm:"index;type:varchar(36)" json:"user_id"`
	Symbol        string  `json:"symbol"`
	Type          string  `json:"type"` // "BUY" or "SELL"
	Price         float64 `json:"price"`
	Quantity      float64 `json:"quantity"`
	QuoteQuantity float64 `json:"quote_quantity"`
	Timestamp     int64   `json:"timestamp"` // unix milliseconds
	Strategy      string  `json:"strategy"`
	Profit        float64 `json:"profit,omitempty"`
}

// PaperPosition is the single instrument a user's trader currently holds.
// There is at most one row per user.
type PaperPosition struct {
	UserID     string    `gorm:"primaryKey;type:varchar(36)"`
	Symbol     string    `gorm:"not null"`
	Quantity   float64   `gorm:"not null"`
	EntryPrice float64   `gorm:"not null"`
	Cost       float64   `gorm:"not null"`
	OpenedAt   time.Time `gorm:"not null"`
}

// TraderSettings holds a user's AI trader configuration.
type TraderSettings struct {
	UserID    string    `gorm:"primaryKey;type:varchar(36)" json:"user_id"`
	Active    bool      `gorm:"not null;default:false" json:"active"`
	Budget    float64   `gorm:"not null" json:"budget"`
	RiskLevel int       `gorm:"not null" json:"risk_level"` // 0-100
	AssetMix  string    `gorm:"type:varchar(16);not null" json:"asset_mix"`
	UpdatedAt time.Time `json:"updated_at"`
}
