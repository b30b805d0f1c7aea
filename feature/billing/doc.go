// Package billing supplies the customer-side charge records consumed by the
// reconciliation engine.
//
// Charges come from either the billing database (customer_charges table) or a
// CSV export. Both sources implement reconcile.ChargeSource; the engine drains
// a charge source eagerly to build its match index, so these sources
// materialize the full set.
//
// # CSV Layout
//
// The expected columns, after a header row:
//
//	tracking_number,billed_amount,declared_weight,zone,applied_fuel_surcharge,charge_date,customer_id
//
// applied_fuel_surcharge may be empty; charge_date is YYYY-MM-DD.
package billing
