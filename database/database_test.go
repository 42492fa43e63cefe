package database

import (
	"path/filepath"
	"testing"

	"budget/config"
	"budget/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_SQLite(t *testing.T) {
	oldDB := DB
	defer func() { DB = oldDB }()

	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver:   "sqlite",
		Path:     filepath.Join(t.TempDir(), "nested", "budget.db"),
		LogLevel: "silent",
	}}
	require.NoError(t, Init(cfg))
	require.NotNil(t, GetDB())

	assert.True(t, DB.Migrator().HasTable(&models.Month{}))
	assert.True(t, DB.Migrator().HasTable(&models.Transaction{}))
	assert.True(t, DB.Migrator().HasIndex(&models.Month{}, "idx_month_year"))

	sqlDB, err := DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestInit_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "oracle"}}
	assert.Error(t, Init(cfg))
}
