package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"freight-audit/core/config"
	"freight-audit/core/logger"
	"freight-audit/core/reconcile"
	"freight-audit/core/utils"
	"freight-audit/feature/billing"
	"freight-audit/feature/carrier"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	invoicesPath   string
	chargesPath    string
	outputPath     string
	batchSize      int
	priceTolerance string
)

// auditCmd runs a reconciliation over CSV exports without touching the
// database or the report archive.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Reconcile CSV exports of carrier invoices and customer charges",
	Long: `Reconcile a carrier invoice export against a customer charge export
and print the resulting report as JSON.

The invoice file is streamed in batches, so exports larger than memory are
fine. Interrupting the run (Ctrl-C) stops at the next batch boundary and
emits a report covering the batches completed so far, marked partial.

Examples:
  # Reconcile two exports with default tolerances
  freight-audit audit --invoices invoices.csv --charges charges.csv

  # Tighter price tolerance, report to a file
  freight-audit audit --invoices invoices.csv --charges charges.csv \
    --price-tolerance 0.001 --output report.json`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringVar(&invoicesPath, "invoices", "", "Carrier invoice CSV export (required)")
	auditCmd.Flags().StringVar(&chargesPath, "charges", "", "Customer charge CSV export (required)")
	auditCmd.Flags().StringVar(&outputPath, "output", "", "Write the JSON report here instead of stdout")
	auditCmd.Flags().IntVar(&batchSize, "batch-size", 0, "Override the configured batch size")
	auditCmd.Flags().StringVar(&priceTolerance, "price-tolerance", "", "Override the configured price tolerance")
	_ = auditCmd.MarkFlagRequired("invoices")
	_ = auditCmd.MarkFlagRequired("charges")

	RootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	auditCfg, err := cfg.Audit.ToConfig()
	if err != nil {
		return fmt.Errorf("invalid audit configuration: %w", err)
	}
	if batchSize > 0 {
		auditCfg.BatchSize = batchSize
	}
	if priceTolerance != "" {
		tolerance, err := utils.ParseDecimal(priceTolerance)
		if err != nil {
			return fmt.Errorf("invalid --price-tolerance: %w", err)
		}
		auditCfg.PriceTolerance = tolerance
	}

	// Ctrl-C cancels at the next batch boundary instead of killing the run.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l.Info("Starting CSV reconciliation",
		zap.String("invoices", invoicesPath),
		zap.String("charges", chargesPath),
		zap.Int("batch_size", auditCfg.BatchSize))

	report, err := reconcile.ReconcileStream(ctx,
		carrier.NewCSVSource(invoicesPath),
		billing.CSVSource{Path: chargesPath},
		auditCfg)
	if err != nil {
		return err
	}

	if report.Partial {
		l.Warn("Run interrupted, report covers completed batches only",
			zap.Int("records", report.TotalRecordsProcessed))
	}
	l.Info("Reconciliation finished",
		zap.Int("records", report.TotalRecordsProcessed),
		zap.Int("discrepancies", len(report.Discrepancies)),
		zap.Int("unmatched_invoices", len(report.UnmatchedCarrierInvoices)),
		zap.Int("unmatched_charges", len(report.UnmatchedCustomerCharges)))

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if outputPath == "" {
		fmt.Println(string(payload))
		return nil
	}
	if err := os.WriteFile(outputPath, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	l.Info("Report written", zap.String("path", outputPath))
	return nil
}
