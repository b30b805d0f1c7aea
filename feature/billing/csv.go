package billing

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"freight-audit/core/reconcile"
	"freight-audit/core/utils"
)

const chargeColumns = 7

// CSVSource reads customer charges from a CSV export. It implements
// reconcile.ChargeSource.
type CSVSource struct {
	Path string
}

func (s CSVSource) All(_ context.Context) ([]reconcile.CustomerCharge, error) {
	return ReadChargesCSV(s.Path)
}

// ReadChargesCSV parses a customer charge export. The first row is a header
// and is skipped. A malformed row aborts the read with the row number in the
// error.
func ReadChargesCSV(path string) ([]reconcile.CustomerCharge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open charges file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = chargeColumns

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read charges header: %w", err)
	}

	var charges []reconcile.CustomerCharge
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read charges row %d: %w", row, err)
		}

		charge, err := parseChargeRecord(record)
		if err != nil {
			return nil, fmt.Errorf("invalid charge on row %d: %w", row, err)
		}
		charges = append(charges, charge)
	}
	return charges, nil
}

func parseChargeRecord(record []string) (reconcile.CustomerCharge, error) {
	amount, err := utils.ParseDecimal(record[1])
	if err != nil {
		return reconcile.CustomerCharge{}, fmt.Errorf("billed_amount: %w", err)
	}
	weight, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return reconcile.CustomerCharge{}, fmt.Errorf("declared_weight: %w", err)
	}
	surcharge, err := utils.ParseOptionalDecimal(record[4])
	if err != nil {
		return reconcile.CustomerCharge{}, fmt.Errorf("applied_fuel_surcharge: %w", err)
	}
	chargeDate, err := time.Parse("2006-01-02", record[5])
	if err != nil {
		return reconcile.CustomerCharge{}, fmt.Errorf("charge_date: %w", err)
	}

	return reconcile.CustomerCharge{
		TrackingNumber:       record[0],
		BilledAmount:         amount,
		DeclaredWeight:       weight,
		Zone:                 record[3],
		AppliedFuelSurcharge: surcharge,
		ChargeDate:           chargeDate,
		CustomerID:           record[6],
	}, nil
}
