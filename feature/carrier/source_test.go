package carrier

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

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

func invoiceColumnsForMock() []string {
	return []string{"id", "tracking_number", "amount", "weight",
		"zone", "fuel_surcharge", "invoice_date", "carrier_name"}
}

func TestDBSource_KeysetPagination(t *testing.T) {
	db, mock := setupMockDB(t)
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	first := sqlmock.NewRows(invoiceColumnsForMock()).
		AddRow(10, "UPS-1", "5.99", 1.0, "EU", nil, day, "UPS").
		AddRow(11, "UPS-2", "7.49", 2.0, "US", "0.75", day, "UPS")
	mock.ExpectQuery("SELECT \\* FROM `carrier_invoices` WHERE id > \\?").
		WithArgs(int64(0)).
		WillReturnRows(first)

	second := sqlmock.NewRows(invoiceColumnsForMock()).
		AddRow(12, "UPS-3", "3.25", 0.5, "NL", nil, day, "UPS")
	mock.ExpectQuery("SELECT \\* FROM `carrier_invoices` WHERE id > \\?").
		WithArgs(int64(11)).
		WillReturnRows(second)

	mock.ExpectQuery("SELECT \\* FROM `carrier_invoices` WHERE id > \\?").
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows(invoiceColumnsForMock()))

	source := NewDBSource(db)

	batch, err := source.NextBatch(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "UPS-1", batch[0].TrackingNumber)
	require.NotNil(t, batch[1].FuelSurcharge)
	assert.Equal(t, "0.75", batch[1].FuelSurcharge.String())

	batch, err = source.NextBatch(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "UPS-3", batch[0].TrackingNumber)

	batch, err = source.NextBatch(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, batch, "exhausted source yields an empty batch")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBSource_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT .*").WillReturnError(assert.AnError)

	_, err := NewDBSource(db).NextBatch(context.Background(), 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier invoices")
}

func writeInvoicesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invoices.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const invoiceHeader = "tracking_number,amount,weight,zone,fuel_surcharge,invoice_date,carrier_name\n"

func TestCSVSource_StreamsInBatches(t *testing.T) {
	path := writeInvoicesFile(t, invoiceHeader+
		"UPS-1,5.99,1.0,EU,0.50,2026-08-01,UPS\n"+
		"UPS-2,7.49,2.0,US,,2026-08-01,UPS\n"+
		"UPS-3,3.25,0.5,NL,0.25,2026-08-02,UPS\n")

	source := NewCSVSource(path)

	batch, err := source.NextBatch(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "UPS-1", batch[0].TrackingNumber)
	require.NotNil(t, batch[0].FuelSurcharge)
	assert.Nil(t, batch[1].FuelSurcharge)

	batch, err = source.NextBatch(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "UPS-3", batch[0].TrackingNumber)

	batch, err = source.NextBatch(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestCSVSource_MalformedRow(t *testing.T) {
	path := writeInvoicesFile(t, invoiceHeader+
		"UPS-1,5.99,heavy,EU,,2026-08-01,UPS\n")

	_, err := NewCSVSource(path).NextBatch(context.Background(), 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "weight")
}

func TestCSVSource_HeaderOnly(t *testing.T) {
	path := writeInvoicesFile(t, invoiceHeader)

	batch, err := NewCSVSource(path).NextBatch(context.Background(), 10)

	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestCSVSource_MissingFile(t *testing.T) {
	_, err := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv")).NextBatch(context.Background(), 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}
