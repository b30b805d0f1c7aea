package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"freight-audit/core/config"
	"freight-audit/core/database"
	"freight-audit/core/logger"
	"freight-audit/feature/carrier"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	ingestFrom string
	ingestTo   string
)

// ingestCmd fetches a carrier's invoice lines and stores them in the billing
// database, the same operation the POST /carriers/:code/ingest endpoint runs.
var ingestCmd = &cobra.Command{
	Use:   "ingest <carrier>",
	Short: "Fetch and store a carrier's invoice lines for a billing period",
	Long: `Fetch invoice lines from a carrier's billing API and store them in the
carrier_invoices table, ready for the next reconciliation run.

Examples:
  freight-audit ingest ups --from 2026-07-01 --to 2026-07-31
  freight-audit ingest fedex --from 2026-08-01 --to 2026-08-31`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestFrom, "from", "", "Period start, YYYY-MM-DD (required)")
	ingestCmd.Flags().StringVar(&ingestTo, "to", "", "Period end, YYYY-MM-DD (required)")
	_ = ingestCmd.MarkFlagRequired("from")
	_ = ingestCmd.MarkFlagRequired("to")

	RootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	code := strings.ToLower(args[0])

	from, err := time.Parse("2006-01-02", ingestFrom)
	if err != nil {
		return fmt.Errorf("invalid --from date: %w", err)
	}
	to, err := time.Parse("2006-01-02", ingestTo)
	if err != nil {
		return fmt.Errorf("invalid --to date: %w", err)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	count, err := carrier.NewService(db, l).Ingest(context.Background(), code, from, to)
	if err != nil {
		return err
	}

	l.Info("Ingestion finished", zap.String("carrier", code), zap.Int("lines", count))
	return nil
}
