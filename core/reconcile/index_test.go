package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChargeIndex_FirstWins(t *testing.T) {
	first := testCharge("5.99")
	second := testCharge("9.99") // same tracking number, later duplicate

	idx := BuildChargeIndex([]CustomerCharge{first, second})

	assert.Equal(t, 1, idx.Len())
	got, ok := idx.Lookup("123ABC")
	require.True(t, ok)
	assert.True(t, got.BilledAmount.Equal(dec("5.99")), "later duplicate must be dropped")
}

func TestBuildChargeIndex_EmptyTrackingNumberIsValidKey(t *testing.T) {
	a := testCharge("1.00")
	a.TrackingNumber = ""
	b := testCharge("2.00")
	b.TrackingNumber = ""

	idx := BuildChargeIndex([]CustomerCharge{a, b})

	assert.Equal(t, 1, idx.Len())
	got, ok := idx.Lookup("")
	require.True(t, ok)
	assert.True(t, got.BilledAmount.Equal(dec("1.00")))
}

func TestChargeIndex_UnvisitedKeysInFirstOccurrenceOrder(t *testing.T) {
	charges := make([]CustomerCharge, 0, 4)
	for _, tn := range []string{"C", "A", "B", "A"} {
		c := testCharge("1.00")
		c.TrackingNumber = tn
		charges = append(charges, c)
	}
	idx := BuildChargeIndex(charges)

	visited := map[string]struct{}{"A": {}}
	assert.Equal(t, []string{"C", "B"}, idx.UnvisitedKeys(visited))

	// Nothing visited: everything comes back, still in input order.
	assert.Equal(t, []string{"C", "A", "B"}, idx.UnvisitedKeys(map[string]struct{}{}))
}

func TestChargeIndex_LookupMiss(t *testing.T) {
	idx := BuildChargeIndex(nil)
	_, ok := idx.Lookup("missing")
	assert.False(t, ok)
	assert.Empty(t, idx.UnvisitedKeys(map[string]struct{}{}))
}
