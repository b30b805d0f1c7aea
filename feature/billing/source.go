package billing

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"freight-audit/core/reconcile"
	"freight-audit/feature/billing/models"
)

// Source loads customer charges from the billing database. It implements
// reconcile.ChargeSource.
type Source struct {
	db *gorm.DB
}

// NewSource returns a database-backed charge source.
func NewSource(db *gorm.DB) *Source {
	return &Source{db: db}
}

// All returns every customer charge ordered by primary key.
func (s *Source) All(ctx context.Context) ([]reconcile.CustomerCharge, error) {
	var rows []models.CustomerChargeRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query customer charges: %w", err)
	}

	charges := make([]reconcile.CustomerCharge, 0, len(rows))
	for _, row := range rows {
		charges = append(charges, row.ToRecord())
	}
	return charges, nil
}
