package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"freight-audit/core/reconcile"
	"freight-audit/core/storage"
	"freight-audit/feature/billing"
	"freight-audit/feature/carrier"
)

const (
	chargeIndexKey = "billing-charges"
	chargeIndexTTL = 5 * time.Minute
)

// Service runs reconciliations and serves archived reports.
type Service struct {
	db      *gorm.DB
	archive *Archive
	logger  *zap.Logger
	cfg     reconcile.Config
	cache   *reconcile.IndexCache
}

// NewService creates a new reconciliation service.
func NewService(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger, cfg reconcile.Config) *Service {
	return &Service{
		db:      db,
		archive: NewArchive(client, bucket),
		logger:  logger,
		cfg:     cfg,
		cache:   reconcile.NewIndexCache(),
	}
}

// Run executes a batched reconciliation over the billing database and
// archives the resulting report. Cancellation via ctx yields a report marked
// partial, which is archived like any other.
func (s *Service) Run(ctx context.Context) (*reconcile.Report, error) {
	if s.db == nil {
		return nil, errors.New("billing database not configured")
	}

	run := reconcile.NewStreamRun(carrier.NewDBSource(s.db), billing.NewSource(s.db), s.cfg)
	report, err := run.Run(ctx)
	if err != nil {
		return nil, err
	}
	report.ID = uuid.NewString()

	if err := s.archive.Save(ctx, report); err != nil {
		return report, fmt.Errorf("run %s completed but archiving failed: %w", report.ID, err)
	}

	s.logger.Info("Reconciliation run complete",
		zap.String("report_id", report.ID),
		zap.Int("records", report.TotalRecordsProcessed),
		zap.Int("batches", run.Batches()),
		zap.Int("discrepancies", len(report.Discrepancies)),
		zap.Bool("partial", report.Partial))
	return report, nil
}

// AuditLine evaluates one carrier invoice line against the indexed customer
// charges. The matched flag is false when no charge exists for the line's
// tracking number; the line is then unmatched, not discrepant.
func (s *Service) AuditLine(ctx context.Context, line reconcile.CarrierInvoiceLine) ([]reconcile.Discrepancy, bool, error) {
	if s.db == nil {
		return nil, false, errors.New("billing database not configured")
	}

	index, err := s.cache.Get(ctx, chargeIndexKey, chargeIndexTTL, billing.NewSource(s.db).All)
	if err != nil {
		return nil, false, err
	}

	charge, ok := index.Lookup(line.TrackingNumber)
	if !ok {
		return nil, false, nil
	}
	return reconcile.Detect(line, charge, s.cfg), true, nil
}

// Report fetches an archived report by ID.
func (s *Service) Report(ctx context.Context, id string) (*reconcile.Report, error) {
	return s.archive.Get(ctx, id)
}

// Reports lists the archived reports.
func (s *Service) Reports(ctx context.Context) ([]ReportRef, error) {
	return s.archive.List(ctx)
}

// DeleteReport removes an archived report.
func (s *Service) DeleteReport(ctx context.Context, id string) error {
	return s.archive.Delete(ctx, id)
}
