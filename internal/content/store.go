// Package content stores per-user instrument collections: the wishlist and
// the notification subscriptions. Both are sets keyed by (user, symbol).
package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"borsa-dashboard-go/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Kind selects a collection.
type Kind string

const (
	Wishlist      Kind = "wishlist"
	Notifications Kind = "notifications"
)

// Outcome is the result of a toggle.
type Outcome string

const (
	Added   Outcome = "added"
	Removed Outcome = "removed"
)

var (
	ErrUnknownKind   = errors.New("unknown collection")
	ErrUnknownSymbol = errors.New("unknown symbol")
	ErrNoUser        = errors.New("user id is required")
)

// SymbolChecker reports whether a symbol exists. *catalog.Catalog satisfies it.
type SymbolChecker interface {
	Contains(symbol string) bool
}

// Store is a set of symbols per user for one Kind.
type Store struct {
	db      *gorm.DB
	kind    Kind
	symbols SymbolChecker
}

// NewStore creates a store for kind. symbols may be nil to accept any symbol.
func NewStore(db *gorm.DB, kind Kind, symbols SymbolChecker) (*Store, error) {
	if kind != Wishlist && kind != Notifications {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return &Store{db: db, kind: kind, symbols: symbols}, nil
}

// Kind returns the collection this store manages.
func (s *Store) Kind() Kind {
	return s.kind
}

// Toggle removes symbol if present and adds it otherwise. The unique index
// on (user, symbol) guarantees a pair is never stored twice even when two
// toggles race.
func (s *Store) Toggle(ctx context.Context, userID, symbol string) (Outcome, error) {
	symbol, err := s.validate(userID, symbol)
	if err != nil {
		return "", err
	}

	var outcome Outcome
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND symbol = ?", userID, symbol).Delete(s.model())
		if res.Error != nil {
			return fmt.Errorf("failed to remove %s entry: %w", s.kind, res.Error)
		}
		if res.RowsAffected > 0 {
			outcome = Removed
			return nil
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(s.entry(userID, symbol)).Error; err != nil {
			return fmt.Errorf("failed to add %s entry: %w", s.kind, err)
		}
		outcome = Added
		return nil
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

// Contains reports whether the user's collection holds symbol.
func (s *Store) Contains(ctx context.Context, userID, symbol string) (bool, error) {
	if userID == "" {
		return false, ErrNoUser
	}
	var count int64
	err := s.db.WithContext(ctx).Model(s.model()).
		Where("user_id = ? AND symbol = ?", userID, normalize(symbol)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to query %s: %w", s.kind, err)
	}
	return count > 0, nil
}

// List returns the user's symbols, oldest first.
func (s *Store) List(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	var symbols []string
	err := s.db.WithContext(ctx).Model(s.model()).
		Where("user_id = ?", userID).
		Order("created_at asc, id asc").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.kind, err)
	}
	return symbols, nil
}

func (s *Store) validate(userID, symbol string) (string, error) {
	if userID == "" {
		return "", ErrNoUser
	}
	symbol = normalize(symbol)
	if symbol == "" {
		return "", fmt.Errorf("%w: empty", ErrUnknownSymbol)
	}
	if s.symbols != nil && !s.symbols.Contains(symbol) {
		return "", fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}
	return symbol, nil
}

func (s *Store) model() interface{} {
	if s.kind == Wishlist {
		return &models.WishlistEntry{}
	}
	return &models.NotificationEntry{}
}

func (s *Store) entry(userID, symbol string) interface{} {
	if s.kind == Wishlist {
		return &models.WishlistEntry{UserID: userID, Symbol: symbol}
	}
	return &models.NotificationEntry{UserID: userID, Symbol: symbol}
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
