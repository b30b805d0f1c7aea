package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func streamFixture(n int) ([]CarrierInvoiceLine, []CustomerCharge) {
	invoices := make([]CarrierInvoiceLine, 0, n)
	charges := make([]CustomerCharge, 0, n)
	for i := 0; i < n; i++ {
		tn := fmt.Sprintf("TN-%04d", i)
		invoices = append(invoices, makeLine(tn, "5.99"))
		switch i % 4 {
		case 0:
			charges = append(charges, makeCharge(tn, "6.99"))
		case 1:
			charges = append(charges, makeCharge(tn, "5.99"))
		case 2:
			c := makeCharge(tn, "5.99")
			c.Zone = "EU"
			charges = append(charges, c)
		}
		// i%4 == 3: carrier-only
	}
	charges = append(charges, makeCharge("NEVER-SHIPPED", "9.99"))
	return invoices, charges
}

func TestReconcileStream_MatchesWholeCollectionMode(t *testing.T) {
	invoices, charges := streamFixture(250)

	reference := Reconcile(invoices, charges, DefaultConfig())

	cfg := DefaultConfig()
	cfg.BatchSize = 7 // deliberately not a divisor of the input size
	streamed, err := ReconcileStream(context.Background(),
		NewSliceInvoiceSource(invoices), SliceChargeSource(charges), cfg)

	require.NoError(t, err)
	assert.Equal(t, reference.TotalRecordsProcessed, streamed.TotalRecordsProcessed)
	assert.Equal(t, reference.Discrepancies, streamed.Discrepancies)
	assert.Equal(t, reference.UnmatchedCarrierInvoices, streamed.UnmatchedCarrierInvoices)
	assert.Equal(t, reference.UnmatchedCustomerCharges, streamed.UnmatchedCustomerCharges)
	assert.Equal(t, reference.Summary, streamed.Summary)
	assert.False(t, streamed.Partial)
}

func TestStreamRun_StateProgression(t *testing.T) {
	invoices, charges := streamFixture(30)
	cfg := DefaultConfig()
	cfg.BatchSize = 10

	run := NewStreamRun(NewSliceInvoiceSource(invoices), SliceChargeSource(charges), cfg)
	assert.Equal(t, RunIdle, run.State())

	report, err := run.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, RunDone, run.State())
	assert.Equal(t, 3, run.Batches())
	assert.Equal(t, 30, report.TotalRecordsProcessed)
}

func TestStreamRun_CancellationAtBatchBoundary(t *testing.T) {
	invoices, charges := streamFixture(100)
	cfg := DefaultConfig()
	cfg.BatchSize = 10

	ctx, cancel := context.WithCancel(context.Background())

	// Cancel after the third batch completes.
	source := &cancellingSource{
		inner:       NewSliceInvoiceSource(invoices),
		cancelAfter: 3,
		cancel:      cancel,
	}

	run := NewStreamRun(source, SliceChargeSource(charges), cfg)
	report, err := run.Run(ctx)

	require.NoError(t, err, "cancellation is a partial result, not an error")
	assert.True(t, report.Partial)
	assert.Equal(t, RunCancelled, run.State())
	// Exactly three full batches were processed; none abandoned mid-batch.
	assert.Equal(t, 30, report.TotalRecordsProcessed)
	assert.Equal(t, 3, run.Batches())

	// Unmatched charges are computed against the processed prefix only, so
	// every charge whose invoice sits in an unprocessed batch shows up here.
	assert.Contains(t, report.UnmatchedCustomerCharges, "NEVER-SHIPPED")
}

func TestStreamRun_CancelledBeforeFirstBatch(t *testing.T) {
	invoices, charges := streamFixture(20)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := ReconcileStream(ctx, NewSliceInvoiceSource(invoices), SliceChargeSource(charges), DefaultConfig())

	require.NoError(t, err)
	assert.True(t, report.Partial)
	assert.Equal(t, 0, report.TotalRecordsProcessed)
	// Nothing was visited, so every indexed charge is unmatched.
	assert.Len(t, report.UnmatchedCustomerCharges, BuildChargeIndex(charges).Len())
}

func TestStreamRun_SourceErrors(t *testing.T) {
	t.Run("charge source failure", func(t *testing.T) {
		_, err := ReconcileStream(context.Background(),
			NewSliceInvoiceSource(nil),
			failingChargeSource{},
			DefaultConfig())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "customer charges")
	})

	t.Run("invoice source failure", func(t *testing.T) {
		_, err := ReconcileStream(context.Background(),
			failingInvoiceSource{},
			SliceChargeSource(nil),
			DefaultConfig())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "carrier invoice batch")
	})
}

func TestStreamRun_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BatchSize = 0

	_, err := ReconcileStream(context.Background(),
		NewSliceInvoiceSource(nil), SliceChargeSource(nil), cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch size")
}

// cancellingSource cancels the run's context after a fixed number of batches
// has been handed out.
type cancellingSource struct {
	inner       *SliceInvoiceSource
	cancelAfter int
	served      int
	cancel      context.CancelFunc
}

func (s *cancellingSource) NextBatch(ctx context.Context, max int) ([]CarrierInvoiceLine, error) {
	batch, err := s.inner.NextBatch(ctx, max)
	if err != nil {
		return nil, err
	}
	s.served++
	if s.served >= s.cancelAfter {
		s.cancel()
	}
	return batch, nil
}

type failingChargeSource struct{}

func (failingChargeSource) All(context.Context) ([]CustomerCharge, error) {
	return nil, errors.New("billing database unavailable")
}

type failingInvoiceSource struct{}

func (failingInvoiceSource) NextBatch(context.Context, int) ([]CarrierInvoiceLine, error) {
	return nil, errors.New("carrier feed unavailable")
}
