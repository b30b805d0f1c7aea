package carrier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"freight-audit/feature/carrier/models"
)

const insertBatchSize = 500

// Service handles carrier invoice ingestion.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new carrier service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Carriers lists the carrier codes available for ingestion.
func (s *Service) Carriers() []string {
	return Codes()
}

// Ingest fetches a carrier's invoice lines for the period and stores them in
// the billing database. It returns the number of lines stored.
func (s *Service) Ingest(ctx context.Context, code string, from, to time.Time) (int, error) {
	if s.db == nil {
		return 0, errors.New("billing database not configured")
	}

	client, err := New(code)
	if err != nil {
		return 0, err
	}

	lines, err := client.FetchInvoiceLines(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch %s invoice lines: %w", client.Name(), err)
	}
	if len(lines) == 0 {
		return 0, nil
	}

	rows := make([]models.CarrierInvoiceRow, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, models.FromLine(line))
	}
	if err := s.db.WithContext(ctx).CreateInBatches(rows, insertBatchSize).Error; err != nil {
		return 0, fmt.Errorf("failed to store %s invoice lines: %w", client.Name(), err)
	}

	s.logger.Info("Ingested carrier invoices",
		zap.String("carrier", code),
		zap.Int("lines", len(rows)),
		zap.Time("from", from),
		zap.Time("to", to))
	return len(rows), nil
}
