package reconcile

import "time"

// Reconcile performs a whole-collection reconciliation pass: both inputs fully
// materialized. It builds the charge index, iterates the carrier invoices
// once, and assembles the final report. This is the reference semantics;
// StreamRun produces an identical report for the same logical input.
func Reconcile(invoices []CarrierInvoiceLine, charges []CustomerCharge, cfg Config) *Report {
	index := BuildChargeIndex(charges)
	report := newReport()
	visited := make(map[string]struct{}, len(invoices))

	for _, line := range invoices {
		processLine(report, index, visited, line, cfg)
	}

	finalizeReport(report, index, visited)
	return report
}

func newReport() *Report {
	return &Report{
		GeneratedAt:              time.Now().UTC(),
		Discrepancies:            []Discrepancy{},
		UnmatchedCarrierInvoices: []string{},
		UnmatchedCustomerCharges: []string{},
	}
}

// processLine applies the per-record matching logic shared by both run modes:
// count the line, mark its tracking number visited, and either record it as
// unmatched or run the detector against the indexed charge.
func processLine(report *Report, index *ChargeIndex, visited map[string]struct{}, line CarrierInvoiceLine, cfg Config) {
	report.TotalRecordsProcessed++
	visited[line.TrackingNumber] = struct{}{}

	charge, ok := index.Lookup(line.TrackingNumber)
	if !ok {
		report.UnmatchedCarrierInvoices = append(report.UnmatchedCarrierInvoices, line.TrackingNumber)
		return
	}

	report.Discrepancies = append(report.Discrepancies, Detect(line, charge, cfg)...)
}

// finalizeReport computes the unmatched customer charges against whatever
// portion of the carrier set was processed, then folds the summary.
func finalizeReport(report *Report, index *ChargeIndex, visited map[string]struct{}) {
	report.UnmatchedCustomerCharges = index.UnvisitedKeys(visited)
	report.Summary = Summarize(report.Discrepancies)
}
