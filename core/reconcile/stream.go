package reconcile

import (
	"context"
	"fmt"
	"sync"
)

// InvoiceSource supplies carrier invoice lines incrementally. NextBatch
// returns at most max lines; an empty batch with a nil error signals
// exhaustion. Sources backed by I/O should honor ctx in their own reads.
type InvoiceSource interface {
	NextBatch(ctx context.Context, max int) ([]CarrierInvoiceLine, error)
}

// ChargeSource supplies the complete customer charge set. It is drained once,
// eagerly, before any carrier invoice is processed: a later-batch miss must
// not be misreported as unmatched when a match exists anywhere in the set.
type ChargeSource interface {
	All(ctx context.Context) ([]CustomerCharge, error)
}

// RunState describes where a streaming run is in its lifecycle.
type RunState string

const (
	RunIdle       RunState = "IDLE"
	RunIndexBuilt RunState = "INDEX_BUILT"
	RunProcessing RunState = "PROCESSING"
	RunFinalizing RunState = "FINALIZING"
	RunDone       RunState = "DONE"
	// RunCancelled is absorbing: a cancelled run still finalizes with the
	// work completed so far but never resumes processing.
	RunCancelled RunState = "CANCELLED"
)

// StreamRun executes one batched reconciliation pass in bounded memory.
// The charge source is indexed up front; the invoice source is consumed in
// batches of Config.BatchSize. Cancellation is honored at batch boundaries
// only: a started batch always completes, no further batch starts once the
// context is done, and the returned report is marked Partial.
//
// A StreamRun is single-use and owns its report and visited set exclusively;
// it must not be shared across goroutines while running.
type StreamRun struct {
	cfg      Config
	invoices InvoiceSource
	charges  ChargeSource

	mu      sync.Mutex
	state   RunState
	batches int
}

// NewStreamRun prepares a batched run; nothing is read until Run is called.
func NewStreamRun(invoices InvoiceSource, charges ChargeSource, cfg Config) *StreamRun {
	return &StreamRun{
		cfg:      cfg,
		invoices: invoices,
		charges:  charges,
		state:    RunIdle,
	}
}

// State reports the current lifecycle state. Safe for concurrent use.
func (r *StreamRun) State() RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Batches reports how many invoice batches have been fully processed.
func (r *StreamRun) Batches() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.batches
}

func (r *StreamRun) setState(s RunState) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

// Run executes the pass. Source errors are returned as errors; cancellation
// is not an error, it yields a Partial report covering the completed prefix.
func (r *StreamRun) Run(ctx context.Context) (*Report, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reconciliation config: %w", err)
	}

	all, err := r.charges.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer charges: %w", err)
	}
	index := BuildChargeIndex(all)
	r.setState(RunIndexBuilt)

	report := newReport()
	visited := make(map[string]struct{})
	cancelled := false

	for {
		if ctx.Err() != nil {
			cancelled = true
			r.setState(RunCancelled)
			break
		}
		r.setState(RunProcessing)

		batch, err := r.invoices.NextBatch(ctx, r.cfg.BatchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to read carrier invoice batch: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		for _, line := range batch {
			processLine(report, index, visited, line, r.cfg)
		}
		r.mu.Lock()
		r.batches++
		r.mu.Unlock()
	}

	if !cancelled {
		r.setState(RunFinalizing)
	}
	finalizeReport(report, index, visited)
	report.Partial = cancelled
	if !cancelled {
		r.setState(RunDone)
	}
	return report, nil
}

// ReconcileStream is a convenience wrapper over NewStreamRun(...).Run(ctx).
func ReconcileStream(ctx context.Context, invoices InvoiceSource, charges ChargeSource, cfg Config) (*Report, error) {
	return NewStreamRun(invoices, charges, cfg).Run(ctx)
}

// SliceInvoiceSource adapts an in-memory slice to InvoiceSource, mainly for
// tests and whole-collection parity checks.
type SliceInvoiceSource struct {
	lines []CarrierInvoiceLine
	pos   int
}

// NewSliceInvoiceSource wraps lines without copying them.
func NewSliceInvoiceSource(lines []CarrierInvoiceLine) *SliceInvoiceSource {
	return &SliceInvoiceSource{lines: lines}
}

func (s *SliceInvoiceSource) NextBatch(_ context.Context, max int) ([]CarrierInvoiceLine, error) {
	if s.pos >= len(s.lines) {
		return nil, nil
	}
	end := s.pos + max
	if end > len(s.lines) {
		end = len(s.lines)
	}
	batch := s.lines[s.pos:end]
	s.pos = end
	return batch, nil
}

// SliceChargeSource adapts an in-memory slice to ChargeSource.
type SliceChargeSource []CustomerCharge

func (s SliceChargeSource) All(context.Context) ([]CustomerCharge, error) {
	return s, nil
}
