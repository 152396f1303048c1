package engine

import "github.com/fieldlens/fieldlens/pkg/model"

// Mode is the explorer direction: forward explores which indicators a set of
// fields unlocks; reverse explores which fields a set of indicators demands.
type Mode int

const (
	ModeForward Mode = iota
	ModeReverse
)

// String returns a human-readable label for the mode.
func (m Mode) String() string {
	if m == ModeReverse {
		return "Reverse"
	}
	return "Forward"
}

// Selection holds the two mutually exclusive selection sets gated by the
// mode. Invariant: in forward mode the indicator set is empty, in reverse
// mode the field set is empty. Toggles against the wrong mode are no-ops.
type Selection struct {
	mode       Mode
	fields     map[model.FieldID]struct{}
	indicators map[model.IndicatorID]struct{}
}

// NewSelection returns an empty selection in forward mode.
func NewSelection() *Selection {
	return &Selection{
		fields:     make(map[model.FieldID]struct{}),
		indicators: make(map[model.IndicatorID]struct{}),
	}
}

// Mode returns the current explorer mode.
func (s *Selection) Mode() Mode { return s.mode }

// ToggleField adds or removes a field from the selection. It reports
// whether the selection changed; in reverse mode it is a no-op.
func (s *Selection) ToggleField(id model.FieldID) bool {
	if s.mode != ModeForward {
		return false
	}
	if _, ok := s.fields[id]; ok {
		delete(s.fields, id)
	} else {
		s.fields[id] = struct{}{}
	}
	return true
}

// ToggleIndicator adds or removes an indicator from the selection. It
// reports whether the selection changed; in forward mode it is a no-op.
func (s *Selection) ToggleIndicator(id model.IndicatorID) bool {
	if s.mode != ModeReverse {
		return false
	}
	if _, ok := s.indicators[id]; ok {
		delete(s.indicators, id)
	} else {
		s.indicators[id] = struct{}{}
	}
	return true
}

// SetMode switches the explorer mode. Switching clears the set the new mode
// does not use, so the mode invariant holds on entry. Setting the current
// mode again is a no-op. Reports whether the mode changed.
func (s *Selection) SetMode(m Mode) bool {
	if m == s.mode {
		return false
	}
	s.mode = m
	switch m {
	case ModeForward:
		clear(s.indicators)
	case ModeReverse:
		clear(s.fields)
	}
	return true
}

// Reset clears the selection set belonging to the current mode. It reports
// whether anything was cleared; consumers rely on the false case being
// side-effect free to skip redundant re-render work.
func (s *Selection) Reset() bool {
	switch s.mode {
	case ModeReverse:
		if len(s.indicators) == 0 {
			return false
		}
		clear(s.indicators)
	default:
		if len(s.fields) == 0 {
			return false
		}
		clear(s.fields)
	}
	return true
}

// FieldSelected reports whether the field is currently selected.
func (s *Selection) FieldSelected(id model.FieldID) bool {
	_, ok := s.fields[id]
	return ok
}

// IndicatorSelected reports whether the indicator is currently selected.
func (s *Selection) IndicatorSelected(id model.IndicatorID) bool {
	_, ok := s.indicators[id]
	return ok
}

// SelectedFieldCount returns the number of selected fields.
func (s *Selection) SelectedFieldCount() int { return len(s.fields) }

// SelectedIndicatorCount returns the number of selected indicators.
func (s *Selection) SelectedIndicatorCount() int { return len(s.indicators) }

// prune drops selected ids that no longer exist in the index. Used after a
// dataset reload so stale selections cannot linger.
func (s *Selection) prune(idx *Index) {
	for id := range s.fields {
		if !idx.HasField(id) {
			delete(s.fields, id)
		}
	}
	for id := range s.indicators {
		if !idx.HasIndicator(id) {
			delete(s.indicators, id)
		}
	}
}
