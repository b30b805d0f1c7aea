package models

import (
	"time"

	"github.com/shopspring/decimal"

	"freight-audit/core/reconcile"
)

// CustomerChargeRow is the persisted form of a customer charge.
type CustomerChargeRow struct {
	ID                   int64            `gorm:"column:id;primaryKey"`
	TrackingNumber       string           `gorm:"column:tracking_number"`
	BilledAmount         decimal.Decimal  `gorm:"column:billed_amount;type:decimal(12,2)"`
	DeclaredWeight       float64          `gorm:"column:declared_weight"`
	Zone                 string           `gorm:"column:zone"`
	AppliedFuelSurcharge *decimal.Decimal `gorm:"column:applied_fuel_surcharge;type:decimal(12,2)"`
	ChargeDate           time.Time        `gorm:"column:charge_date"`
	CustomerID           string           `gorm:"column:customer_id"`
}

func (CustomerChargeRow) TableName() string {
	return "customer_charges"
}

// ToRecord converts the row to the engine's charge record.
func (r CustomerChargeRow) ToRecord() reconcile.CustomerCharge {
	return reconcile.CustomerCharge{
		TrackingNumber:       r.TrackingNumber,
		BilledAmount:         r.BilledAmount,
		DeclaredWeight:       r.DeclaredWeight,
		Zone:                 r.Zone,
		AppliedFuelSurcharge: r.AppliedFuelSurcharge,
		ChargeDate:           r.ChargeDate,
		CustomerID:           r.CustomerID,
	}
}
