package engine

import (
	"github.com/fieldlens/fieldlens/pkg/model"
)

// Index holds the bidirectional field/indicator indices built from triples.
// It is immutable after BuildIndex returns; reflecting dataset changes means
// re-ingesting all rows and building a fresh Index.
type Index struct {
	fieldIndicators map[model.FieldID]map[model.IndicatorID]struct{}
	indicators      map[model.IndicatorID]*model.IndicatorRecord
	usecases        map[model.UsecaseID]map[model.IndicatorID]struct{}

	// First-seen orders give the engine a deterministic iteration order
	// without re-sorting on every derivation.
	fieldOrder     []model.FieldID
	indicatorOrder []model.IndicatorID
}

// BuildIndex accumulates triples into an Index in a single pass. Duplicate
// triples are absorbed by set semantics. When rows disagree on an
// indicator's use case, the first non-empty value wins.
func BuildIndex(triples []model.Triple) *Index {
	idx := &Index{
		fieldIndicators: make(map[model.FieldID]map[model.IndicatorID]struct{}),
		indicators:      make(map[model.IndicatorID]*model.IndicatorRecord),
		usecases:        make(map[model.UsecaseID]map[model.IndicatorID]struct{}),
	}

	for _, t := range triples {
		byField, ok := idx.fieldIndicators[t.Field]
		if !ok {
			byField = make(map[model.IndicatorID]struct{})
			idx.fieldIndicators[t.Field] = byField
			idx.fieldOrder = append(idx.fieldOrder, t.Field)
		}
		byField[t.Indicator] = struct{}{}

		rec, ok := idx.indicators[t.Indicator]
		if !ok {
			rec = &model.IndicatorRecord{ID: t.Indicator}
			idx.indicators[t.Indicator] = rec
			idx.indicatorOrder = append(idx.indicatorOrder, t.Indicator)
		}
		if rec.Usecase == "" && t.Usecase != "" {
			rec.Usecase = t.Usecase
		}
		if !rec.Requires(t.Field) {
			rec.Fields = append(rec.Fields, t.Field)
		}

		if t.Usecase != "" {
			byUsecase, ok := idx.usecases[t.Usecase]
			if !ok {
				byUsecase = make(map[model.IndicatorID]struct{})
				idx.usecases[t.Usecase] = byUsecase
			}
			byUsecase[t.Indicator] = struct{}{}
		}
	}

	return idx
}

// Fields returns all field ids in first-seen order.
func (idx *Index) Fields() []model.FieldID {
	out := make([]model.FieldID, len(idx.fieldOrder))
	copy(out, idx.fieldOrder)
	return out
}

// Indicators returns all indicator ids in first-seen order.
func (idx *Index) Indicators() []model.IndicatorID {
	out := make([]model.IndicatorID, len(idx.indicatorOrder))
	copy(out, idx.indicatorOrder)
	return out
}

// Record returns the record for an indicator, or nil if unknown.
func (idx *Index) Record(id model.IndicatorID) *model.IndicatorRecord {
	return idx.indicators[id]
}

// HasField reports whether the field appears in the dataset.
func (idx *Index) HasField(id model.FieldID) bool {
	_, ok := idx.fieldIndicators[id]
	return ok
}

// HasIndicator reports whether the indicator appears in the dataset.
func (idx *Index) HasIndicator(id model.IndicatorID) bool {
	_, ok := idx.indicators[id]
	return ok
}

// IndicatorCount returns how many indicators use the given field.
func (idx *Index) IndicatorCount(f model.FieldID) int {
	return len(idx.fieldIndicators[f])
}

// IndicatorsForField returns the indicators that require the field,
// in indicator first-seen order.
func (idx *Index) IndicatorsForField(f model.FieldID) []model.IndicatorID {
	set, ok := idx.fieldIndicators[f]
	if !ok {
		return nil
	}
	out := make([]model.IndicatorID, 0, len(set))
	for _, id := range idx.indicatorOrder {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Usecases returns the distinct non-empty use case ids, in no particular order.
func (idx *Index) Usecases() []model.UsecaseID {
	out := make([]model.UsecaseID, 0, len(idx.usecases))
	for uc := range idx.usecases {
		out = append(out, uc)
	}
	return out
}

// IndicatorsForUsecase returns the indicators mapped to the use case,
// in indicator first-seen order.
func (idx *Index) IndicatorsForUsecase(uc model.UsecaseID) []model.IndicatorID {
	set, ok := idx.usecases[uc]
	if !ok {
		return nil
	}
	out := make([]model.IndicatorID, 0, len(set))
	for _, id := range idx.indicatorOrder {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// FieldCount returns the number of distinct fields.
func (idx *Index) FieldCount() int { return len(idx.fieldIndicators) }

// TotalIndicators returns the number of distinct indicators.
func (idx *Index) TotalIndicators() int { return len(idx.indicators) }

// EdgeCount returns the number of distinct (field, indicator) pairs.
func (idx *Index) EdgeCount() int {
	n := 0
	for _, set := range idx.fieldIndicators {
		n += len(set)
	}
	return n
}
