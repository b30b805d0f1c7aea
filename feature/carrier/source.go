package carrier

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"freight-audit/core/reconcile"
	"freight-audit/feature/carrier/models"
)

// DBSource streams carrier invoice lines from the carrier_invoices table.
// It implements reconcile.InvoiceSource using keyset pagination, so a batch
// never loads more than max rows regardless of table size.
//
// A DBSource is single-use; its cursor only moves forward.
type DBSource struct {
	db     *gorm.DB
	lastID int64
}

// NewDBSource returns a source positioned before the first row.
func NewDBSource(db *gorm.DB) *DBSource {
	return &DBSource{db: db}
}

func (s *DBSource) NextBatch(ctx context.Context, max int) ([]reconcile.CarrierInvoiceLine, error) {
	var rows []models.CarrierInvoiceRow
	err := s.db.WithContext(ctx).
		Where("id > ?", s.lastID).
		Order("id").
		Limit(max).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query carrier invoices after id %d: %w", s.lastID, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	s.lastID = rows[len(rows)-1].ID

	lines := make([]reconcile.CarrierInvoiceLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, row.ToLine())
	}
	return lines, nil
}
