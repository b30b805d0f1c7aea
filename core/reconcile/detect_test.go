package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func testLine(amount string) CarrierInvoiceLine {
	return CarrierInvoiceLine{
		TrackingNumber: "123ABC",
		Amount:         dec(amount),
		Weight:         2.0,
		Zone:           "NL",
		CarrierName:    "UPS",
	}
}

func testCharge(billed string) CustomerCharge {
	return CustomerCharge{
		TrackingNumber: "123ABC",
		BilledAmount:   dec(billed),
		DeclaredWeight: 2.0,
		Zone:           "NL",
		CustomerID:     "CUST-1",
	}
}

func TestDetect_IdenticalRecords(t *testing.T) {
	found := Detect(testLine("5.99"), testCharge("5.99"), DefaultConfig())
	assert.Empty(t, found)
}

func TestDetect_PriceMismatch(t *testing.T) {
	found := Detect(testLine("5.99"), testCharge("6.99"), DefaultConfig())

	require.Len(t, found, 1)
	d := found[0]
	assert.Equal(t, DiscrepancyPrice, d.Type)
	assert.Equal(t, "123ABC", d.TrackingNumber)
	assert.True(t, d.FinancialImpact.Equal(dec("1.00")), "impact was %s", d.FinancialImpact)
	// 1.00 is below the default medium threshold of 2.00.
	assert.Equal(t, SeverityLow, d.Severity)
	require.NotNil(t, d.CarrierAmount)
	require.NotNil(t, d.CustomerAmount)
	assert.True(t, d.CarrierAmount.Equal(dec("5.99")))
	assert.True(t, d.CustomerAmount.Equal(dec("6.99")))
	// Pairs of other discrepancy types stay nil.
	assert.Nil(t, d.CarrierWeight)
	assert.Nil(t, d.CarrierSurcharge)
}

func TestDetect_UnderchargeHasNegativeImpact(t *testing.T) {
	found := Detect(testLine("6.99"), testCharge("5.99"), DefaultConfig())

	require.Len(t, found, 1)
	assert.True(t, found[0].FinancialImpact.Equal(dec("-1.00")), "impact was %s", found[0].FinancialImpact)
}

func TestDetect_ToleranceBoundary(t *testing.T) {
	tests := []struct {
		name    string
		billed  string
		trigger bool
	}{
		{"difference exactly at tolerance does not trigger", "6.00", false},
		{"one cent above tolerance triggers", "6.01", true},
		{"no difference", "5.99", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.PriceTolerance = dec("0.01")
			found := Detect(testLine("5.99"), testCharge(tt.billed), cfg)
			if tt.trigger {
				assert.Len(t, found, 1)
			} else {
				assert.Empty(t, found)
			}
		})
	}
}

func TestDetect_WeightMismatch(t *testing.T) {
	line := testLine("5.99")
	charge := testCharge("5.99")
	charge.DeclaredWeight = 1.5 // carrier weight 2.0, 5% tolerance allows 0.1

	found := Detect(line, charge, DefaultConfig())

	require.Len(t, found, 1)
	d := found[0]
	assert.Equal(t, DiscrepancyWeight, d.Type)
	assert.True(t, d.FinancialImpact.IsZero())
	assert.Equal(t, SeverityMedium, d.Severity)
	require.NotNil(t, d.CarrierWeight)
	require.NotNil(t, d.CustomerWeight)
	assert.Equal(t, 2.0, *d.CarrierWeight)
	assert.Equal(t, 1.5, *d.CustomerWeight)
}

func TestDetect_WeightWithinRelativeTolerance(t *testing.T) {
	line := testLine("5.99")
	line.Weight = 10.0
	charge := testCharge("5.99")
	charge.DeclaredWeight = 10.4 // within 5% of the carrier's 10.0

	assert.Empty(t, Detect(line, charge, DefaultConfig()))
}

func TestDetect_ZoneComparedCaseInsensitively(t *testing.T) {
	line := testLine("5.99")
	charge := testCharge("5.99")
	charge.Zone = "nl"

	assert.Empty(t, Detect(line, charge, DefaultConfig()))

	charge.Zone = "EU"
	found := Detect(line, charge, DefaultConfig())
	require.Len(t, found, 1)
	assert.Equal(t, DiscrepancyZone, found[0].Type)
	assert.True(t, found[0].FinancialImpact.IsZero())
	assert.Equal(t, SeverityMedium, found[0].Severity)
	assert.Equal(t, "NL", found[0].CarrierZone)
	assert.Equal(t, "EU", found[0].CustomerZone)
}

func TestDetect_MultipleDiscrepanciesInFixedOrder(t *testing.T) {
	line := testLine("5.99")
	charge := CustomerCharge{
		TrackingNumber: "123ABC",
		BilledAmount:   dec("6.99"),
		DeclaredWeight: 1.5,
		Zone:           "EU",
	}

	found := Detect(line, charge, DefaultConfig())

	require.Len(t, found, 3)
	assert.Equal(t, DiscrepancyPrice, found[0].Type)
	assert.Equal(t, DiscrepancyWeight, found[1].Type)
	assert.Equal(t, DiscrepancyZone, found[2].Type)
}

func TestDetect_FuelSurcharge(t *testing.T) {
	t.Run("absent on both sides is not a discrepancy", func(t *testing.T) {
		assert.Empty(t, Detect(testLine("5.99"), testCharge("5.99"), DefaultConfig()))
	})

	t.Run("absent on one side skips the check", func(t *testing.T) {
		line := testLine("5.99")
		line.FuelSurcharge = decPtr("1.50")
		assert.Empty(t, Detect(line, testCharge("5.99"), DefaultConfig()))

		line.FuelSurcharge = nil
		charge := testCharge("5.99")
		charge.AppliedFuelSurcharge = decPtr("1.50")
		assert.Empty(t, Detect(line, charge, DefaultConfig()))
	})

	t.Run("difference beyond tolerance triggers", func(t *testing.T) {
		line := testLine("5.99")
		line.FuelSurcharge = decPtr("1.50")
		charge := testCharge("5.99")
		charge.AppliedFuelSurcharge = decPtr("2.00")

		found := Detect(line, charge, DefaultConfig())
		require.Len(t, found, 1)
		d := found[0]
		assert.Equal(t, DiscrepancyFuelSurcharge, d.Type)
		assert.True(t, d.FinancialImpact.Equal(dec("0.50")))
		assert.Equal(t, SeverityLow, d.Severity)
		require.NotNil(t, d.CarrierSurcharge)
		require.NotNil(t, d.CustomerSurcharge)
	})

	t.Run("all four types can coexist", func(t *testing.T) {
		line := testLine("5.99")
		line.FuelSurcharge = decPtr("1.00")
		charge := CustomerCharge{
			TrackingNumber:       "123ABC",
			BilledAmount:         dec("6.99"),
			DeclaredWeight:       1.5,
			Zone:                 "EU",
			AppliedFuelSurcharge: decPtr("2.00"),
		}

		found := Detect(line, charge, DefaultConfig())
		require.Len(t, found, 4)
		assert.Equal(t, DiscrepancyFuelSurcharge, found[3].Type)
	})
}

func TestClassifySeverity(t *testing.T) {
	cfg := DefaultConfig() // high=10.00, medium=2.00

	tests := []struct {
		amount string
		want   Severity
	}{
		{"0.50", SeverityLow},
		{"3.00", SeverityMedium},
		{"15.00", SeverityHigh},
		{"2.00", SeverityMedium}, // threshold is inclusive
		{"10.00", SeverityHigh},
		{"0.00", SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, classifySeverity(dec(tt.amount), cfg))
		})
	}
}
