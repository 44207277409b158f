package database

import (
	"fmt"
	"testing"

	"borsa-dashboard-go/internal/config"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewTestDatabase returns a migrated, isolated in-memory sqlite database.
func NewTestDatabase(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := NewDatabase(&config.Database{Driver: "sqlite", DSN: dsn})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
