package reconcile

// ChargeIndex maps tracking numbers to customer charges for O(1) average
// lookup during the pass over the carrier invoices.
//
// Duplicate tracking numbers keep the first-encountered record; later
// duplicates are neither an error nor separately reported, they are simply
// invisible to the matching logic. An empty tracking number is a valid key,
// so multiple empty-keyed records collapse together under the same rule.
// First-occurrence key order is retained so unmatched output is deterministic.
type ChargeIndex struct {
	byTracking map[string]CustomerCharge
	order      []string
}

// BuildChargeIndex builds the index from a charge sequence, first record wins.
func BuildChargeIndex(charges []CustomerCharge) *ChargeIndex {
	idx := &ChargeIndex{
		byTracking: make(map[string]CustomerCharge, len(charges)),
		order:      make([]string, 0, len(charges)),
	}
	for _, charge := range charges {
		if _, seen := idx.byTracking[charge.TrackingNumber]; seen {
			continue
		}
		idx.byTracking[charge.TrackingNumber] = charge
		idx.order = append(idx.order, charge.TrackingNumber)
	}
	return idx
}

// Lookup returns the charge for a tracking number, if one is indexed.
func (ix *ChargeIndex) Lookup(trackingNumber string) (CustomerCharge, bool) {
	charge, ok := ix.byTracking[trackingNumber]
	return charge, ok
}

// Len returns the number of distinct tracking numbers in the index.
func (ix *ChargeIndex) Len() int {
	return len(ix.byTracking)
}

// UnvisitedKeys returns the index keys absent from the visited set, in
// first-occurrence order. These are the unmatched customer charges after a
// pass over the carrier invoices.
func (ix *ChargeIndex) UnvisitedKeys(visited map[string]struct{}) []string {
	unvisited := make([]string, 0)
	for _, key := range ix.order {
		if _, ok := visited[key]; !ok {
			unvisited = append(unvisited, key)
		}
	}
	return unvisited
}
