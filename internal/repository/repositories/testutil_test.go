package repositories

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite database with the full
// schema applied. TranslateError keeps unique violations surfacing as
// gorm.ErrDuplicatedKey, same as the postgres client.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"),
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))

	return db
}

func newTestProvider(t *testing.T, db *gorm.DB, businessID *string) uint64 {
	t.Helper()

	row := Provider{
		BusinessID:  businessID,
		OwnerUserID: "user-1",
		Name:        "Test Movers",
	}
	require.NoError(t, db.Create(&row).Error)

	return row.ID
}

func strPtr(s string) *string {
	return &s
}

func int64Ptr(v int64) *int64 {
	return &v
}
