package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func TestMissingBillingTables(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		db, mock := setupMockDB(t)
		count := sqlmock.NewRows([]string{"count(*)"}).AddRow(1)
		mock.ExpectQuery(".*").WillReturnRows(count)
		count2 := sqlmock.NewRows([]string{"count(*)"}).AddRow(1)
		mock.ExpectQuery(".*").WillReturnRows(count2)

		assert.Empty(t, MissingBillingTables(db))
	})

	t.Run("charges table missing", func(t *testing.T) {
		db, mock := setupMockDB(t)
		missingRow := sqlmock.NewRows([]string{"count(*)"}).AddRow(0)
		mock.ExpectQuery(".*").WillReturnRows(missingRow)
		presentRow := sqlmock.NewRows([]string{"count(*)"}).AddRow(1)
		mock.ExpectQuery(".*").WillReturnRows(presentRow)

		assert.Equal(t, []string{"customer_charges"}, MissingBillingTables(db))
	})
}
