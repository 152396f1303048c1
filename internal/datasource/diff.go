package datasource

import (
	"fmt"

	"github.com/fieldlens/fieldlens/pkg/model"
)

// RowDiff summarizes what changed between two loads of the mapping
// dataset. Used to log a compact reload message instead of dumping rows.
type RowDiff struct {
	AddedFields       []model.FieldID
	RemovedFields     []model.FieldID
	AddedIndicators   []model.IndicatorID
	RemovedIndicators []model.IndicatorID
	RowDelta          int
}

// Empty reports whether the reload changed nothing visible.
func (d RowDiff) Empty() bool {
	return len(d.AddedFields) == 0 && len(d.RemovedFields) == 0 &&
		len(d.AddedIndicators) == 0 && len(d.RemovedIndicators) == 0 &&
		d.RowDelta == 0
}

// String renders the diff as a one-line summary.
func (d RowDiff) String() string {
	return fmt.Sprintf("rows %+d, fields +%d/-%d, indicators +%d/-%d",
		d.RowDelta, len(d.AddedFields), len(d.RemovedFields),
		len(d.AddedIndicators), len(d.RemovedIndicators))
}

// DiffRows compares two row snapshots by the distinct field and indicator
// values they mention. Incomplete rows count toward RowDelta but not
// toward the id sets, matching what ingestion will keep.
func DiffRows(old, new []model.Row) RowDiff {
	oldFields, oldIndicators := idSets(old)
	newFields, newIndicators := idSets(new)

	d := RowDiff{RowDelta: len(new) - len(old)}
	for f := range newFields {
		if _, ok := oldFields[f]; !ok {
			d.AddedFields = append(d.AddedFields, f)
		}
	}
	for f := range oldFields {
		if _, ok := newFields[f]; !ok {
			d.RemovedFields = append(d.RemovedFields, f)
		}
	}
	for i := range newIndicators {
		if _, ok := oldIndicators[i]; !ok {
			d.AddedIndicators = append(d.AddedIndicators, i)
		}
	}
	for i := range oldIndicators {
		if _, ok := newIndicators[i]; !ok {
			d.RemovedIndicators = append(d.RemovedIndicators, i)
		}
	}
	return d
}

func idSets(rows []model.Row) (map[model.FieldID]struct{}, map[model.IndicatorID]struct{}) {
	fields := make(map[model.FieldID]struct{})
	indicators := make(map[model.IndicatorID]struct{})
	for _, r := range rows {
		if !r.Complete() {
			continue
		}
		t := r.Trimmed()
		fields[model.FieldID(t.Fields)] = struct{}{}
		indicators[model.IndicatorID(t.Indicator)] = struct{}{}
	}
	return fields, indicators
}
