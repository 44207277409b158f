package database

import (
	"testing"

	"borsa-dashboard-go/internal/config"
	"borsa-dashboard-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase_MigratesSchema(t *testing.T) {
	db := NewTestDatabase(t)

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
}

func TestAutoMigrate_KeepsRows(t *testing.T) {
	db := NewTestDatabase(t)
	require.NoError(t, db.Create(&models.Account{ID: "u1", Email: "a@b.c", PasswordHash: "x", Tier: models.TierPro}).Error)

	require.NoError(t, AutoMigrate(db))

	var count int64
	db.Model(&models.Account{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	_, err := NewDatabase(&config.Database{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
