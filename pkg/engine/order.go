package engine

import "github.com/fieldlens/fieldlens/pkg/model"

// OrderTracker maintains the append-only display order for computable
// indicators. Once an indicator earns a slot it keeps its position while it
// stays computable; indicators that regress are pruned, and re-earning a
// slot always appends at the end rather than restoring the old position.
// This keeps the computable list visually stable while the user explores
// field combinations.
//
// The tracker is session state: it depends on the history of selection
// changes, not just the current selection. Reset it whenever the underlying
// dataset is reloaded.
type OrderTracker struct {
	// appendOrder is the canonical order for newly computable ids
	// (indicator first-seen order from the index).
	appendOrder []model.IndicatorID
	order       []model.IndicatorID
	tracked     map[model.IndicatorID]struct{}
}

// NewOrderTracker returns an empty tracker that appends new entries in the
// given canonical order.
func NewOrderTracker(appendOrder []model.IndicatorID) *OrderTracker {
	t := &OrderTracker{tracked: make(map[model.IndicatorID]struct{})}
	t.appendOrder = make([]model.IndicatorID, len(appendOrder))
	copy(t.appendOrder, appendOrder)
	return t
}

// Update reconciles the tracked order against the currently computable set:
// ids that dropped out are removed (survivors keep their relative order),
// and ids newly computable are appended in canonical order. The returned
// slice is the definitive display order and is safe for the caller to keep.
func (t *OrderTracker) Update(computable map[model.IndicatorID]struct{}) []model.IndicatorID {
	kept := t.order[:0]
	for _, id := range t.order {
		if _, ok := computable[id]; ok {
			kept = append(kept, id)
		} else {
			delete(t.tracked, id)
		}
	}
	t.order = kept

	for _, id := range t.appendOrder {
		if _, ok := computable[id]; !ok {
			continue
		}
		if _, ok := t.tracked[id]; ok {
			continue
		}
		t.order = append(t.order, id)
		t.tracked[id] = struct{}{}
	}

	out := make([]model.IndicatorID, len(t.order))
	copy(out, t.order)
	return out
}

// Order returns a copy of the current display order without reconciling.
func (t *OrderTracker) Order() []model.IndicatorID {
	out := make([]model.IndicatorID, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of tracked indicators.
func (t *OrderTracker) Len() int { return len(t.order) }

// Reset clears the tracked order. Call on dataset reload.
func (t *OrderTracker) Reset() {
	t.order = nil
	clear(t.tracked)
}
