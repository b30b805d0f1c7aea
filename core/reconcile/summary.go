package reconcile

import "github.com/shopspring/decimal"

// Summarize folds a discrepancy list into per-type counts, per-severity
// counts, and financial totals. Zero-impact discrepancies contribute to the
// signed total (trivially) but to neither the overcharged nor undercharged
// bucket.
func Summarize(discrepancies []Discrepancy) Summary {
	s := Summary{
		TotalFinancialImpact: decimal.Zero,
		TotalUndercharged:    decimal.Zero,
		TotalOvercharged:     decimal.Zero,
	}

	for _, d := range discrepancies {
		switch d.Type {
		case DiscrepancyPrice:
			s.PriceCount++
		case DiscrepancyWeight:
			s.WeightCount++
		case DiscrepancyZone:
			s.ZoneCount++
		case DiscrepancyFuelSurcharge:
			s.FuelSurchargeCount++
		}

		switch d.Severity {
		case SeverityHigh:
			s.HighCount++
		case SeverityMedium:
			s.MediumCount++
		case SeverityLow:
			s.LowCount++
		}

		s.TotalFinancialImpact = s.TotalFinancialImpact.Add(d.FinancialImpact)
		switch d.FinancialImpact.Sign() {
		case 1:
			s.TotalOvercharged = s.TotalOvercharged.Add(d.FinancialImpact)
		case -1:
			s.TotalUndercharged = s.TotalUndercharged.Add(d.FinancialImpact.Neg())
		}
	}

	return s
}
