package engine

import "sort"

// SortKey selects what the field list is ordered by.
type SortKey int

const (
	ByCount SortKey = iota // number of indicators using the field
	ByName                 // field name, lexicographic
)

// String returns a human-readable label for the sort key.
func (k SortKey) String() string {
	if k == ByName {
		return "Name"
	}
	return "Count"
}

// DefaultDirection returns the natural direction for the key: highest
// counts first, names A-Z.
func (k SortKey) DefaultDirection() SortDirection {
	if k == ByName {
		return Ascending
	}
	return Descending
}

// SortDirection orders a sorted list ascending or descending.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// String returns a human-readable label for the direction.
func (d SortDirection) String() string {
	if d == Ascending {
		return "Ascending"
	}
	return "Descending"
}

// Indicator returns the arrow glyph for the direction.
func (d SortDirection) Indicator() string {
	if d == Ascending {
		return "▲"
	}
	return "▼"
}

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// SortSpec is the field list ordering: key plus direction.
type SortSpec struct {
	Key       SortKey
	Direction SortDirection
}

// DefaultSortSpec returns the initial ordering: count, descending.
func DefaultSortSpec() SortSpec {
	return SortSpec{Key: ByCount, Direction: Descending}
}

// Toggle applies a sort-header activation: activating the current key flips
// the direction, activating a different key switches to it with that key's
// default direction.
func (s SortSpec) Toggle(k SortKey) SortSpec {
	if k == s.Key {
		s.Direction = s.Direction.Toggle()
		return s
	}
	return SortSpec{Key: k, Direction: k.DefaultDirection()}
}

// SortFields orders the field rows in place by spec's key and direction.
// The sort is
// stable in both directions: rows comparing equal on the key keep their
// relative input order, so repeated re-sorts do not jitter.
func SortFields(rows []FieldRow, spec SortSpec) {
	sort.SliceStable(rows, func(i, j int) bool {
		var less, greater bool
		switch spec.Key {
		case ByName:
			less = rows[i].ID < rows[j].ID
			greater = rows[i].ID > rows[j].ID
		default:
			less = rows[i].IndicatorCount < rows[j].IndicatorCount
			greater = rows[i].IndicatorCount > rows[j].IndicatorCount
		}
		if spec.Direction == Descending {
			return greater
		}
		return less
	})
}
