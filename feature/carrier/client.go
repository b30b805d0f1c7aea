package carrier

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"freight-audit/core/reconcile"
)

// Client fetches invoice lines from a carrier's billing API.
type Client interface {
	// Code is the short lowercase identifier used in routes and CLI flags.
	Code() string
	// Name is the carrier's display name, stored on ingested lines.
	Name() string
	// FetchInvoiceLines returns the lines invoiced in [from, to].
	FetchInvoiceLines(ctx context.Context, from, to time.Time) ([]reconcile.CarrierInvoiceLine, error)
}

// Constructor builds a fresh client. Clients hold no session state between
// requests; authentication happens inside each FetchInvoiceLines call.
type Constructor func() Client

var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{}
)

// Register adds a carrier to the registry. Registering a code twice panics;
// carrier codes are wired at init time and a collision is a programming error.
func Register(code string, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[code]; exists {
		panic(fmt.Sprintf("carrier %q registered twice", code))
	}
	registry[code] = ctor
}

// New builds a client for the given carrier code.
func New(code string) (Client, error) {
	registryMu.RLock()
	ctor, ok := registry[code]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown carrier %q, available: %v", code, Codes())
	}
	return ctor(), nil
}

// Codes lists the registered carrier codes in sorted order.
func Codes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

const (
	retryAttempts = 3
	retryBackoff  = 100 * time.Millisecond
)

// withRetry runs fn up to retryAttempts times with a fixed backoff between
// attempts. Any retry state belongs to fn's closure, so it lives exactly as
// long as one request.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff):
			}
		}
		if err = fn(); err == nil {
			return nil
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", retryAttempts, err)
}
