package engine

import (
	"sort"

	"github.com/fieldlens/fieldlens/pkg/model"
)

// FieldCount is one entry of the reverse-mode frequency table: how many
// selected indicators require the field.
type FieldCount struct {
	Field model.FieldID
	Count int
}

// AggregateRequiredFields builds the reverse-mode frequency table for the
// selected indicators. Fields are sorted by count descending, ties broken
// by field name ascending. An empty selection yields an empty table; that
// is the "no selection" state, not an error.
func AggregateRequiredFields(idx *Index, selected map[model.IndicatorID]struct{}) []FieldCount {
	if len(selected) == 0 {
		return nil
	}

	counts := make(map[model.FieldID]int)
	for id := range selected {
		rec := idx.Record(id)
		if rec == nil {
			continue
		}
		for _, f := range rec.Fields {
			counts[f]++
		}
	}

	out := make([]FieldCount, 0, len(counts))
	for f, n := range counts {
		out = append(out, FieldCount{Field: f, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Field < out[j].Field
	})
	return out
}
