package engine

import "github.com/fieldlens/fieldlens/pkg/model"

// FieldRow is one entry of the forward-mode field list.
type FieldRow struct {
	ID             model.FieldID
	IndicatorCount int
	Selected       bool
}

// IndicatorView is one indicator with its satisfied/missing breakdown.
type IndicatorView struct {
	ID        model.IndicatorID
	Usecase   model.UsecaseID
	Satisfied []model.FieldID
	Missing   []model.FieldID
	Ratio     float64
}

// Computable reports whether the indicator has no missing fields.
func (v IndicatorView) Computable() bool { return len(v.Missing) == 0 }

// IndicatorRow is one entry of the reverse-mode indicator picker.
type IndicatorRow struct {
	ID         model.IndicatorID
	Usecase    model.UsecaseID
	FieldCount int
	Selected   bool
}

// ForwardView is the view model for forward mode: the sorted field list and
// the indicator list partitioned into computable (stable display order) and
// incomplete (ratio-sorted) halves.
type ForwardView struct {
	Fields     []FieldRow
	Computable []IndicatorView
	Incomplete []IndicatorView
}

// ReverseView is the view model for reverse mode: the indicator picker and
// the aggregated required-field frequency table.
type ReverseView struct {
	Indicators     []IndicatorRow
	RequiredFields []FieldCount
}

// View is the tagged view model handed to the renderer. Exactly one of
// Forward and Reverse is non-nil, matching Mode; the renderer switches on
// the tag instead of reinterpreting shared containers.
type View struct {
	Mode    Mode
	Sort    SortSpec
	Forward *ForwardView
	Reverse *ReverseView
}
