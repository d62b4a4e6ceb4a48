package database

import (
	"bagbuilder-go/internal/config"
	"bagbuilder-go/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	db, err := NewDatabase(config.Database{Driver: config.DriverSQLite, DSN: "file::memory:"})
	require.NoError(t, err)

	for _, m := range []interface{}{
		&models.Trade{},
		&models.StableBalance{},
		&models.Contribution{},
		&models.JournalEntry{},
		&models.UserSettings{},
	} {
		assert.True(t, db.Migrator().HasTable(m), "%T table missing", m)
	}
}

func TestAutoMigrateKeepsRows(t *testing.T) {
	db, err := NewDatabase(config.Database{Driver: config.DriverSQLite, DSN: "file::memory:"})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.StableBalance{UserID: "u1", Label: "USDC", Amount: 100}).Error)
	require.NoError(t, AutoMigrate(db))

	var count int64
	require.NoError(t, db.Model(&models.StableBalance{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNewDatabaseUnsupportedDriver(t *testing.T) {
	_, err := NewDatabase(config.Database{Driver: "mysql", DSN: "x"})
	assert.EqualError(t, err, `unsupported database driver "mysql"`)
}
