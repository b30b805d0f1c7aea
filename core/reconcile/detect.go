package reconcile

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Detect compares one matched pair against the configured tolerances and
// returns zero to four discrepancies, in the fixed order Price, Weight, Zone,
// FuelSurcharge. It is a pure function: no input combination raises an error,
// and all comparisons are total over the domain.
func Detect(line CarrierInvoiceLine, charge CustomerCharge, cfg Config) []Discrepancy {
	var found []Discrepancy

	// Price: absolute difference beyond tolerance. Impact is customer minus
	// carrier, so positive means the customer was overcharged.
	if impact := charge.BilledAmount.Sub(line.Amount); impact.Abs().GreaterThan(cfg.PriceTolerance) {
		carrier, customer := line.Amount, charge.BilledAmount
		found = append(found, Discrepancy{
			TrackingNumber:  line.TrackingNumber,
			Type:            DiscrepancyPrice,
			CarrierAmount:   &carrier,
			CustomerAmount:  &customer,
			FinancialImpact: impact,
			Severity:        classifySeverity(impact.Abs(), cfg),
			Description: fmt.Sprintf("billed amount %s differs from carrier invoice amount %s for %s",
				customer, carrier, line.TrackingNumber),
		})
	}

	// Weight: tolerance is a fraction of the carrier's recorded weight, not a
	// fixed absolute value. No monetary delta without re-pricing, so impact
	// stays zero and severity is fixed at Medium.
	if math.Abs(line.Weight-charge.DeclaredWeight) > line.Weight*cfg.WeightTolerancePercent {
		carrier, customer := line.Weight, charge.DeclaredWeight
		found = append(found, Discrepancy{
			TrackingNumber:  line.TrackingNumber,
			Type:            DiscrepancyWeight,
			CarrierWeight:   &carrier,
			CustomerWeight:  &customer,
			FinancialImpact: decimal.Zero,
			Severity:        SeverityMedium,
			Description: fmt.Sprintf("declared weight %.2fkg differs from carrier weight %.2fkg for %s",
				customer, carrier, line.TrackingNumber),
		})
	}

	// Zone: case-insensitive string comparison, fixed Medium severity.
	if !strings.EqualFold(line.Zone, charge.Zone) {
		found = append(found, Discrepancy{
			TrackingNumber:  line.TrackingNumber,
			Type:            DiscrepancyZone,
			CarrierZone:     line.Zone,
			CustomerZone:    charge.Zone,
			FinancialImpact: decimal.Zero,
			Severity:        SeverityMedium,
			Description: fmt.Sprintf("billed zone %q differs from carrier zone %q for %s",
				charge.Zone, line.Zone, line.TrackingNumber),
		})
	}

	// FuelSurcharge: evaluated only when both sides carry a surcharge.
	// Absence on either side skips the check, it is not a discrepancy.
	if line.FuelSurcharge != nil && charge.AppliedFuelSurcharge != nil {
		if impact := charge.AppliedFuelSurcharge.Sub(*line.FuelSurcharge); impact.Abs().GreaterThan(cfg.PriceTolerance) {
			carrier, customer := *line.FuelSurcharge, *charge.AppliedFuelSurcharge
			found = append(found, Discrepancy{
				TrackingNumber:    line.TrackingNumber,
				Type:              DiscrepancyFuelSurcharge,
				CarrierSurcharge:  &carrier,
				CustomerSurcharge: &customer,
				FinancialImpact:   impact,
				Severity:          classifySeverity(impact.Abs(), cfg),
				Description: fmt.Sprintf("applied fuel surcharge %s differs from carrier surcharge %s for %s",
					customer, carrier, line.TrackingNumber),
			})
		}
	}

	return found
}

// classifySeverity buckets a non-negative impact magnitude against the
// configured thresholds. Weight and Zone discrepancies bypass this entirely.
func classifySeverity(amount decimal.Decimal, cfg Config) Severity {
	switch {
	case amount.GreaterThanOrEqual(cfg.HighSeverityThreshold):
		return SeverityHigh
	case amount.GreaterThanOrEqual(cfg.MediumSeverityThreshold):
		return SeverityMedium
	default:
		return SeverityLow
	}
}
