// Package reconcile implements the invoice reconciliation engine: it matches
// carrier-issued invoice lines against customer-side charge records by tracking
// number, evaluates each matched pair against configurable tolerance rules, and
// produces an aggregate report including unmatched records on both sides.
//
// The engine is designed for tens of millions of records per year by:
//   - Building an in-memory charge index once for O(1) lookups
//   - Streaming carrier invoices in fixed-size batches (bounded memory)
//   - Keeping per-record comparison logic pure and allocation-light
//   - Providing a caching layer for repeated targeted audits
//
// # Architecture
//
// The engine consists of five components:
//
//  1. Record model: CarrierInvoiceLine, CustomerCharge, Discrepancy, Report
//     and Summary, with currency values carried as shopspring decimals.
//
//  2. ChargeIndex: tracking number -> customer charge mapping built once per
//     run. Duplicate tracking numbers keep the first-encountered record; later
//     duplicates are invisible to matching.
//
//  3. Detector: a pure function producing zero to four discrepancies per
//     matched pair, in the fixed order Price, Weight, Zone, FuelSurcharge.
//
//  4. Aggregator: folds the discrepancy list into per-type counts, per-severity
//     counts, and signed financial totals.
//
//  5. Run controller: Reconcile for fully materialized inputs, StreamRun for
//     batched execution with cooperative cancellation at batch boundaries.
//
// # Concurrency
//
// Matching and detection are single-threaded per run; there is no shared
// mutable state between runs. Horizontal scaling is the caller's concern:
// partition both inputs by a disjoint key range so no tracking number spans
// partitions, run one engine per partition, then concatenate discrepancy lists
// and sum summary fields. The IndexCache exposes a built-once, read-only
// charge index for concurrent targeted audits.
//
// # Usage Example
//
//	cfg := reconcile.DefaultConfig()
//	report := reconcile.Reconcile(invoices, charges, cfg)
//
//	// Batched, cancellable:
//	run := reconcile.NewStreamRun(invoiceSource, chargeSource, cfg)
//	report, err := run.Run(ctx)
//	if report != nil && report.Partial {
//	    // cancelled: report covers a prefix of the carrier input
//	}
package reconcile
