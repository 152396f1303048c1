// Package engine implements the in-memory dependency engine behind
// fieldlens: normalizing raw mapping rows, building bidirectional indices,
// tracking selection state, and deriving which indicators are computable
// from the current selection. The engine produces plain view models; all
// rendering lives in pkg/ui.
package engine

import (
	"fmt"

	"github.com/fieldlens/fieldlens/pkg/model"
)

// NormalizeOptions configures row normalization.
type NormalizeOptions struct {
	// WarningHandler is called once per dropped row with a short description.
	// If nil, dropped rows are not reported.
	WarningHandler func(string)
}

// Normalize turns raw rows into clean triples. All three values are
// trimmed; rows missing a field or an indicator after trimming are dropped.
// Order of emission follows input order.
func Normalize(rows []model.Row) []model.Triple {
	return NormalizeWithOptions(rows, NormalizeOptions{})
}

// NormalizeWithOptions is Normalize with a warning hook for dropped rows.
func NormalizeWithOptions(rows []model.Row, opts NormalizeOptions) []model.Triple {
	warn := opts.WarningHandler
	if warn == nil {
		warn = func(string) {}
	}

	triples := make([]model.Triple, 0, len(rows))
	for i, row := range rows {
		t := row.Trimmed()
		if t.Fields == "" || t.Indicator == "" {
			warn(fmt.Sprintf("dropping incomplete row %d (fields=%q indicator=%q)", i+1, t.Fields, t.Indicator))
			continue
		}
		triples = append(triples, model.Triple{
			Field:     model.FieldID(t.Fields),
			Indicator: model.IndicatorID(t.Indicator),
			Usecase:   model.UsecaseID(t.Usecase),
		})
	}
	return triples
}
