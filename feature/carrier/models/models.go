package models

import (
	"time"

	"github.com/shopspring/decimal"

	"freight-audit/core/reconcile"
)

// CarrierInvoiceRow is the persisted form of a carrier invoice line.
type CarrierInvoiceRow struct {
	ID             int64            `gorm:"column:id;primaryKey"`
	TrackingNumber string           `gorm:"column:tracking_number"`
	Amount         decimal.Decimal  `gorm:"column:amount;type:decimal(12,2)"`
	Weight         float64          `gorm:"column:weight"`
	Zone           string           `gorm:"column:zone"`
	FuelSurcharge  *decimal.Decimal `gorm:"column:fuel_surcharge;type:decimal(12,2)"`
	InvoiceDate    time.Time        `gorm:"column:invoice_date"`
	CarrierName    string           `gorm:"column:carrier_name"`
}

func (CarrierInvoiceRow) TableName() string {
	return "carrier_invoices"
}

// FromLine builds a row ready for insertion. The ID is left zero so the
// database assigns it.
func FromLine(line reconcile.CarrierInvoiceLine) CarrierInvoiceRow {
	return CarrierInvoiceRow{
		TrackingNumber: line.TrackingNumber,
		Amount:         line.Amount,
		Weight:         line.Weight,
		Zone:           line.Zone,
		FuelSurcharge:  line.FuelSurcharge,
		InvoiceDate:    line.InvoiceDate,
		CarrierName:    line.CarrierName,
	}
}

// ToLine converts the row to the engine's invoice line.
func (r CarrierInvoiceRow) ToLine() reconcile.CarrierInvoiceLine {
	return reconcile.CarrierInvoiceLine{
		TrackingNumber: r.TrackingNumber,
		Amount:         r.Amount,
		Weight:         r.Weight,
		Zone:           r.Zone,
		FuelSurcharge:  r.FuelSurcharge,
		InvoiceDate:    r.InvoiceDate,
		CarrierName:    r.CarrierName,
	}
}
