package engine

import (
	"sort"

	"github.com/fieldlens/fieldlens/pkg/model"
)

// Session ties the immutable index to the mutable per-session state:
// selection, stable display order, and sort spec. Every user action runs a
// full synchronous recomputation and returns a fresh view model; callers
// never read partial state. The session is single-threaded by contract,
// mirroring the one-event-at-a-time interaction model.
type Session struct {
	idx     *Index
	sel     *Selection
	tracker *OrderTracker
	sort    SortSpec
}

// NewSession creates a session over a built index, in forward mode with
// nothing selected and the default sort.
func NewSession(idx *Index) *Session {
	return &Session{
		idx:     idx,
		sel:     NewSelection(),
		tracker: NewOrderTracker(idx.Indicators()),
		sort:    DefaultSortSpec(),
	}
}

// Index returns the session's index.
func (s *Session) Index() *Index { return s.idx }

// Mode returns the current explorer mode.
func (s *Session) Mode() Mode { return s.sel.Mode() }

// Sort returns the current sort spec.
func (s *Session) Sort() SortSpec { return s.sort }

// FieldSelected reports whether the field is selected.
func (s *Session) FieldSelected(id model.FieldID) bool { return s.sel.FieldSelected(id) }

// IndicatorSelected reports whether the indicator is selected.
func (s *Session) IndicatorSelected(id model.IndicatorID) bool {
	return s.sel.IndicatorSelected(id)
}

// SelectedCount returns the size of the active-mode selection set.
func (s *Session) SelectedCount() int {
	if s.sel.Mode() == ModeReverse {
		return s.sel.SelectedIndicatorCount()
	}
	return s.sel.SelectedFieldCount()
}

// ToggleField toggles a field in forward mode and returns the fresh view.
// In reverse mode it is a no-op.
func (s *Session) ToggleField(id model.FieldID) View {
	s.sel.ToggleField(id)
	return s.View()
}

// ToggleIndicator toggles an indicator in reverse mode and returns the
// fresh view. In forward mode it is a no-op.
func (s *Session) ToggleIndicator(id model.IndicatorID) View {
	s.sel.ToggleIndicator(id)
	return s.View()
}

// SetSortKey applies a sort-header activation and returns the fresh view.
func (s *Session) SetSortKey(k SortKey) View {
	s.sort = s.sort.Toggle(k)
	return s.View()
}

// SetSort replaces the sort spec outright, bypassing toggle semantics.
// Used to apply a configured startup ordering.
func (s *Session) SetSort(spec SortSpec) View {
	s.sort = spec
	return s.View()
}

// SetMode switches the explorer mode and returns the fresh view. The
// stable order from forward mode survives the excursion; it is reconciled
// against current selections when forward mode is re-entered.
func (s *Session) SetMode(m Mode) View {
	s.sel.SetMode(m)
	return s.View()
}

// Reset clears the active-mode selection and returns the fresh view.
func (s *Session) Reset() View {
	s.sel.Reset()
	return s.View()
}

// ReplaceIndex swaps in a freshly built index after a dataset reload. The
// stable order is reset (positions earned against the old dataset are
// meaningless) and selections of ids that vanished are pruned.
func (s *Session) ReplaceIndex(idx *Index) View {
	s.idx = idx
	s.tracker = NewOrderTracker(idx.Indicators())
	s.sel.prune(idx)
	return s.View()
}

// View recomputes the full tagged view model from current state.
func (s *Session) View() View {
	if s.sel.Mode() == ModeReverse {
		return View{
			Mode:    ModeReverse,
			Sort:    s.sort,
			Reverse: s.reverseView(),
		}
	}
	return View{
		Mode:    ModeForward,
		Sort:    s.sort,
		Forward: s.forwardView(),
	}
}

func (s *Session) forwardView() *ForwardView {
	fields := make([]FieldRow, 0, s.idx.FieldCount())
	for _, f := range s.idx.Fields() {
		fields = append(fields, FieldRow{
			ID:             f,
			IndicatorCount: s.idx.IndicatorCount(f),
			Selected:       s.sel.FieldSelected(f),
		})
	}
	SortFields(fields, s.sort)

	derived := Derive(s.idx, s.sel.fields)
	ordered := s.tracker.Update(ComputableSet(derived))

	computable := make([]IndicatorView, 0, len(ordered))
	for _, id := range ordered {
		computable = append(computable, indicatorView(derived[id]))
	}

	incomplete := make([]IndicatorView, 0, s.idx.TotalIndicators()-len(ordered))
	for _, id := range s.idx.Indicators() {
		c := derived[id]
		if c.Computable() {
			continue
		}
		incomplete = append(incomplete, indicatorView(c))
	}
	// Incomplete indicators carry no stability guarantee: fresh sort by
	// completion ratio descending, then name ascending.
	sort.SliceStable(incomplete, func(i, j int) bool {
		if incomplete[i].Ratio != incomplete[j].Ratio {
			return incomplete[i].Ratio > incomplete[j].Ratio
		}
		return incomplete[i].ID < incomplete[j].ID
	})

	return &ForwardView{Fields: fields, Computable: computable, Incomplete: incomplete}
}

func (s *Session) reverseView() *ReverseView {
	rows := make([]IndicatorRow, 0, s.idx.TotalIndicators())
	for _, id := range s.idx.Indicators() {
		rec := s.idx.Record(id)
		rows = append(rows, IndicatorRow{
			ID:         id,
			Usecase:    rec.Usecase,
			FieldCount: len(rec.Fields),
			Selected:   s.sel.IndicatorSelected(id),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	return &ReverseView{
		Indicators:     rows,
		RequiredFields: AggregateRequiredFields(s.idx, s.sel.indicators),
	}
}

func indicatorView(c Computability) IndicatorView {
	return IndicatorView{
		ID:        c.Indicator,
		Usecase:   c.Usecase,
		Satisfied: c.Satisfied,
		Missing:   c.Missing,
		Ratio:     c.Ratio(),
	}
}
