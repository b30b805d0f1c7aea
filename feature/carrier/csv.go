package carrier

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

const invoiceColumns = 7

// CSVSource streams carrier invoice lines from a CSV file. It implements
// reconcile.InvoiceSource; the file is read incrementally, one batch per
// NextBatch call, so arbitrarily large exports fit in bounded memory.
//
// Expected columns, after a header row:
//
//	tracking_number,amount,weight,zone,fuel_surcharge,invoice_date,carrier_name
//
// fuel_surcharge may be empty; invoice_date is YYYY-MM-DD.
type CSVSource struct {
	path   string
	file   *os.File
	reader *csv.Reader
	row    int
	done   bool
}

// NewCSVSource wraps a file path; nothing is opened until the first NextBatch.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) NextBatch(ctx context.Context, max int) ([]reconcile.CarrierInvoiceLine, error) {
	if s.done {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.reader == nil {
		if err := s.open(); err != nil {
			return nil, err
		}
		if s.done { // empty file, no header
			return nil, nil
		}
	}

	batch := make([]reconcile.CarrierInvoiceLine, 0, max)
	for len(batch) < max {
		record, err := s.reader.Read()
		if err == io.EOF {
			s.close()
			break
		}
		if err != nil {
			s.close()
			return nil, fmt.Errorf("failed to read invoices row %d: %w", s.row, err)
		}
		s.row++

		line, err := parseInvoiceRecord(record)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("invalid invoice on row %d: %w", s.row, err)
		}
		batch = append(batch, line)
	}
	return batch, nil
}

func (s *CSVSource) open() error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("failed to open invoices file: %w", err)
	}
	s.file = f
	s.reader = csv.NewReader(f)
	s.reader.FieldsPerRecord = invoiceColumns
	s.row = 1

	if _, err := s.reader.Read(); err != nil {
		s.close()
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("failed to read invoices header: %w", err)
	}
	return nil
}

func (s *CSVSource) close() {
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
	s.done = true
}

func parseInvoiceRecord(record []string) (reconcile.CarrierInvoiceLine, error) {
	amount, err := utils.ParseDecimal(record[1])
	if err != nil {
		return reconcile.CarrierInvoiceLine{}, fmt.Errorf("amount: %w", err)
	}
	weight, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return reconcile.CarrierInvoiceLine{}, fmt.Errorf("weight: %w", err)
	}
	surcharge, err := utils.ParseOptionalDecimal(record[4])
	if err != nil {
		return reconcile.CarrierInvoiceLine{}, fmt.Errorf("fuel_surcharge: %w", err)
	}
	invoiceDate, err := time.Parse("2006-01-02", record[5])
	if err != nil {
		return reconcile.CarrierInvoiceLine{}, fmt.Errorf("invoice_date: %w", err)
	}

	return reconcile.CarrierInvoiceLine{
		TrackingNumber: record[0],
		Amount:         amount,
		Weight:         weight,
		Zone:           record[3],
		FuelSurcharge:  surcharge,
		InvoiceDate:    invoiceDate,
		CarrierName:    record[6],
	}, nil
}
