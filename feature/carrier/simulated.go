package carrier

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"freight-audit/core/reconcile"
)

func init() {
	Register("ups", func() Client { return &simulatedClient{code: "ups", name: "UPS"} })
	Register("fedex", func() Client { return &simulatedClient{code: "fedex", name: "FedEx"} })
	Register("dhl", func() Client { return &simulatedClient{code: "dhl", name: "DHL"} })
}

var simulatedZones = []string{"NL", "DE", "FR", "EU", "US", "UK"}

// simulatedClient stands in for a real carrier billing API. Responses are
// deterministic per (carrier, period), so repeated ingests of the same period
// yield identical lines. The first fetch attempt of some periods fails to
// exercise the retry path.
type simulatedClient struct {
	code string
	name string
}

func (c *simulatedClient) Code() string { return c.code }
func (c *simulatedClient) Name() string { return c.name }

func (c *simulatedClient) FetchInvoiceLines(ctx context.Context, from, to time.Time) ([]reconcile.CarrierInvoiceLine, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid period: %s is before %s",
			to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	rng := rand.New(rand.NewSource(c.seed(from, to)))
	failures := rng.Intn(retryAttempts) // always recoverable within the budget

	var lines []reconcile.CarrierInvoiceLine
	err := withRetry(ctx, func() error {
		// Token is scoped to this request; nothing is cached on the client.
		token, err := c.authenticate(ctx)
		if err != nil {
			return err
		}
		if failures > 0 {
			failures--
			return fmt.Errorf("%s billing API: transient error for token %s", c.name, token)
		}
		lines = c.generate(rng, from, to)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *simulatedClient) authenticate(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d", c.code, time.Now().UnixNano()), nil
}

func (c *simulatedClient) seed(from, to time.Time) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%d", c.code, from.Unix(), to.Unix())
	return int64(h.Sum64())
}

func (c *simulatedClient) generate(rng *rand.Rand, from, to time.Time) []reconcile.CarrierInvoiceLine {
	days := int(to.Sub(from).Hours()/24) + 1
	count := 50 + rng.Intn(50)

	lines := make([]reconcile.CarrierInvoiceLine, 0, count)
	for i := 0; i < count; i++ {
		line := reconcile.CarrierInvoiceLine{
			TrackingNumber: fmt.Sprintf("%s-%09d", strings.ToUpper(c.code), rng.Intn(1_000_000_000)),
			Amount:         randomMoney(rng, 2, 80),
			Weight:         float64(rng.Intn(300)+1) / 10,
			Zone:           simulatedZones[rng.Intn(len(simulatedZones))],
			InvoiceDate:    from.AddDate(0, 0, rng.Intn(days)),
			CarrierName:    c.name,
		}
		if rng.Intn(3) > 0 { // roughly two thirds of shipments carry a surcharge
			s := randomMoney(rng, 0, 5)
			line.FuelSurcharge = &s
		}
		lines = append(lines, line)
	}
	return lines
}

func randomMoney(rng *rand.Rand, min, max float64) decimal.Decimal {
	cents := int64((min + rng.Float64()*(max-min)) * 100)
	return decimal.New(cents, -2)
}
