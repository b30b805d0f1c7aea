package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultBatchSize is the number of carrier invoice lines processed per batch
// in streaming mode when no explicit size is configured.
const DefaultBatchSize = 10000

// Config holds the tolerance rules and batch sizing for a reconciliation run.
type Config struct {
	// PriceTolerance is the maximum absolute difference between the carrier
	// amount and the billed amount before a Price discrepancy is raised.
	// A difference exactly equal to the tolerance does not trigger.
	PriceTolerance decimal.Decimal

	// WeightTolerancePercent is the allowed weight divergence as a fraction
	// of the carrier's recorded weight, not a fixed absolute value.
	WeightTolerancePercent float64

	// HighSeverityThreshold and MediumSeverityThreshold bucket the absolute
	// financial impact of Price and FuelSurcharge discrepancies.
	HighSeverityThreshold   decimal.Decimal
	MediumSeverityThreshold decimal.Decimal

	// BatchSize is the number of carrier invoice lines pulled per batch in
	// streaming mode.
	BatchSize int
}

// DefaultConfig returns the standard audit tolerances.
func DefaultConfig() Config {
	return Config{
		PriceTolerance:          decimal.NewFromFloat(0.01),
		WeightTolerancePercent:  0.05,
		HighSeverityThreshold:   decimal.NewFromFloat(10.00),
		MediumSeverityThreshold: decimal.NewFromFloat(2.00),
		BatchSize:               DefaultBatchSize,
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c Config) Validate() error {
	if c.PriceTolerance.IsNegative() {
		return fmt.Errorf("price tolerance must not be negative, got %s", c.PriceTolerance)
	}
	if c.WeightTolerancePercent < 0 {
		return fmt.Errorf("weight tolerance percent must not be negative, got %f", c.WeightTolerancePercent)
	}
	if c.MediumSeverityThreshold.GreaterThan(c.HighSeverityThreshold) {
		return fmt.Errorf("medium severity threshold %s exceeds high severity threshold %s",
			c.MediumSeverityThreshold, c.HighSeverityThreshold)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	return nil
}

// Settings is the serializable shape of Config used by the configuration
// loader. Currency values are strings so defaults can live in struct tags.
type Settings struct {
	// PriceTolerance is the absolute price tolerance as a decimal string.
	PriceTolerance string `mapstructure:"price_tolerance" default:"0.01"`
	// WeightTolerancePercent is the relative weight tolerance (fraction).
	WeightTolerancePercent float64 `mapstructure:"weight_tolerance_percent" default:"0.05"`
	// HighSeverityThreshold is the High severity cutoff as a decimal string.
	HighSeverityThreshold string `mapstructure:"high_severity_threshold" default:"10.00"`
	// MediumSeverityThreshold is the Medium severity cutoff as a decimal string.
	MediumSeverityThreshold string `mapstructure:"medium_severity_threshold" default:"2.00"`
	// BatchSize is the streaming batch size.
	BatchSize int `mapstructure:"batch_size" default:"10000"`
}

// ToConfig parses the settings into an engine Config and validates it.
func (s Settings) ToConfig() (Config, error) {
	priceTolerance, err := decimal.NewFromString(s.PriceTolerance)
	if err != nil {
		return Config{}, fmt.Errorf("invalid price tolerance %q: %w", s.PriceTolerance, err)
	}
	high, err := decimal.NewFromString(s.HighSeverityThreshold)
	if err != nil {
		return Config{}, fmt.Errorf("invalid high severity threshold %q: %w", s.HighSeverityThreshold, err)
	}
	medium, err := decimal.NewFromString(s.MediumSeverityThreshold)
	if err != nil {
		return Config{}, fmt.Errorf("invalid medium severity threshold %q: %w", s.MediumSeverityThreshold, err)
	}

	cfg := Config{
		PriceTolerance:          priceTolerance,
		WeightTolerancePercent:  s.WeightTolerancePercent,
		HighSeverityThreshold:   high,
		MediumSeverityThreshold: medium,
		BatchSize:               s.BatchSize,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
