package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal parses a currency string, tolerating surrounding whitespace.
func ParseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// ParseOptionalDecimal parses a currency string that may be absent.
// An empty (or whitespace-only) input yields nil, not an error, matching the
// CSV convention for optional surcharge columns.
func ParseOptionalDecimal(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DecimalPtr returns a pointer to d, for populating optional currency fields.
func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// Float64Ptr returns a pointer to f.
func Float64Ptr(f float64) *float64 {
	return &f
}
