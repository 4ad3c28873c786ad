// Package integration exercises the CRM pipeline end to end against a
// real database. An in-memory SQLite database stands in for PostgreSQL
// so the suite runs without external services.
package integration

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/clinic/backend/internal/infrastructure/persistence/models"
)

// NewTestDB opens a fresh in-memory database for one test and migrates
// the CRM schema into it. Each test gets its own database, providing
// complete isolation.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.BookingModel{},
		&models.CustomerModel{},
		&models.FollowUpTaskModel{},
	)
	require.NoError(t, err)

	return db
}
