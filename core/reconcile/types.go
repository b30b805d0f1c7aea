package reconcile

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscrepancyType identifies the dimension along which a matched pair diverges.
type DiscrepancyType string

const (
	DiscrepancyPrice         DiscrepancyType = "PRICE"
	DiscrepancyWeight        DiscrepancyType = "WEIGHT"
	DiscrepancyZone          DiscrepancyType = "ZONE"
	DiscrepancyFuelSurcharge DiscrepancyType = "FUEL_SURCHARGE"
)

// Severity classifies how urgently a discrepancy needs review.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// CarrierInvoiceLine is a single line of a carrier-issued invoice.
// Immutable once constructed; produced by the carrier integration.
type CarrierInvoiceLine struct {
	// TrackingNumber is the join key correlating this line to a customer charge.
	TrackingNumber string `json:"tracking_number"`

	// Amount is the invoiced amount. Expected non-negative but not enforced.
	Amount decimal.Decimal `json:"amount"`

	// Weight is the carrier-recorded weight in kilograms.
	Weight float64 `json:"weight"`

	// Zone is the carrier's shipping zone, compared case-insensitively.
	Zone string `json:"zone"`

	// FuelSurcharge is the invoiced fuel surcharge, if the carrier applied one.
	FuelSurcharge *decimal.Decimal `json:"fuel_surcharge,omitempty"`

	InvoiceDate time.Time `json:"invoice_date"`
	CarrierName string    `json:"carrier_name"`
}

// CustomerCharge is a customer-side charge record produced by billing.
// Immutable once constructed.
type CustomerCharge struct {
	// TrackingNumber is the join key correlating this charge to an invoice line.
	TrackingNumber string `json:"tracking_number"`

	// BilledAmount is the amount billed to the customer.
	BilledAmount decimal.Decimal `json:"billed_amount"`

	// DeclaredWeight is the customer-declared weight in kilograms.
	DeclaredWeight float64 `json:"declared_weight"`

	// Zone is the billing-side shipping zone, compared case-insensitively.
	Zone string `json:"zone"`

	// AppliedFuelSurcharge is the surcharge billed, if one was applied.
	AppliedFuelSurcharge *decimal.Decimal `json:"applied_fuel_surcharge,omitempty"`

	ChargeDate time.Time `json:"charge_date"`
	CustomerID string    `json:"customer_id"`
}

// Discrepancy records one detected mismatch for a matched tracking number.
// Only the carrier/customer value pair relevant to Type is populated; the
// other pairs stay nil. Multiple discrepancy types may coexist for one
// tracking number; they are independent, not mutually exclusive.
type Discrepancy struct {
	TrackingNumber string          `json:"tracking_number"`
	Type           DiscrepancyType `json:"type"`

	// Price pair.
	CarrierAmount  *decimal.Decimal `json:"carrier_amount,omitempty"`
	CustomerAmount *decimal.Decimal `json:"customer_amount,omitempty"`

	// Weight pair, kilograms.
	CarrierWeight  *float64 `json:"carrier_weight,omitempty"`
	CustomerWeight *float64 `json:"customer_weight,omitempty"`

	// Zone pair.
	CarrierZone  string `json:"carrier_zone,omitempty"`
	CustomerZone string `json:"customer_zone,omitempty"`

	// Fuel surcharge pair.
	CarrierSurcharge  *decimal.Decimal `json:"carrier_surcharge,omitempty"`
	CustomerSurcharge *decimal.Decimal `json:"customer_surcharge,omitempty"`

	// FinancialImpact is customer value minus carrier value: positive means
	// the customer was billed more than the carrier invoiced (overcharge).
	// Always zero for Weight and Zone discrepancies, which carry no monetary
	// delta without a re-pricing step.
	FinancialImpact decimal.Decimal `json:"financial_impact"`

	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// Summary aggregates a discrepancy list into counts and financial totals.
type Summary struct {
	// Per-type counts.
	PriceCount         int `json:"price_count"`
	WeightCount        int `json:"weight_count"`
	ZoneCount          int `json:"zone_count"`
	FuelSurchargeCount int `json:"fuel_surcharge_count"`

	// Per-severity counts.
	HighCount   int `json:"high_count"`
	MediumCount int `json:"medium_count"`
	LowCount    int `json:"low_count"`

	// TotalFinancialImpact is the signed sum over all discrepancies.
	// TotalFinancialImpact == TotalOvercharged - TotalUndercharged holds
	// for every report the engine produces.
	TotalFinancialImpact decimal.Decimal `json:"total_financial_impact"`

	// TotalUndercharged sums magnitudes of negative-impact discrepancies.
	TotalUndercharged decimal.Decimal `json:"total_undercharged"`

	// TotalOvercharged sums positive-impact discrepancies.
	TotalOvercharged decimal.Decimal `json:"total_overcharged"`
}

// Report is the output of one reconciliation run.
type Report struct {
	// ID is assigned by the caller when the report is archived; the engine
	// leaves it empty.
	ID string `json:"id,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`

	// TotalRecordsProcessed counts carrier invoice lines seen.
	TotalRecordsProcessed int `json:"total_records_processed"`

	// Discrepancies in insertion order, which is processing order.
	Discrepancies []Discrepancy `json:"discrepancies"`

	Summary Summary `json:"summary"`

	// UnmatchedCarrierInvoices lists tracking numbers present on the carrier
	// side with no customer match, in processing order.
	UnmatchedCarrierInvoices []string `json:"unmatched_carrier_invoices"`

	// UnmatchedCustomerCharges lists tracking numbers present on the customer
	// side that were never visited while processing carrier invoices, in
	// first-occurrence order.
	UnmatchedCustomerCharges []string `json:"unmatched_customer_charges"`

	// Partial marks a report produced by a cancelled streaming run. Its
	// contents cover the batches completed before cancellation, so it is a
	// prefix of the full computation rather than a complete report.
	Partial bool `json:"partial,omitempty"`
}
