package engine

import "github.com/fieldlens/fieldlens/pkg/model"

// Computability is the derived state of one indicator under a field
// selection: which required fields are satisfied, which are missing, and
// (implicitly) whether the indicator can be computed at all.
type Computability struct {
	Indicator model.IndicatorID
	Usecase   model.UsecaseID
	Satisfied []model.FieldID
	Missing   []model.FieldID
}

// Computable reports whether every required field is satisfied.
func (c Computability) Computable() bool { return len(c.Missing) == 0 }

// Ratio returns the fraction of required fields that are satisfied. Used
// only for ordering indicators that are not yet computable.
func (c Computability) Ratio() float64 {
	total := len(c.Satisfied) + len(c.Missing)
	if total == 0 {
		return 0
	}
	return float64(len(c.Satisfied)) / float64(total)
}

// Derive computes the satisfied/missing partition for every indicator in
// the index against the selected fields. It is a pure function of its
// inputs and is recomputed in full on every selection change; the dataset
// is small enough that incremental invalidation would not pay for itself.
// Both partitions preserve the field order stored on the indicator record.
func Derive(idx *Index, selected map[model.FieldID]struct{}) map[model.IndicatorID]Computability {
	out := make(map[model.IndicatorID]Computability, len(idx.indicators))
	for id, rec := range idx.indicators {
		c := Computability{Indicator: id, Usecase: rec.Usecase}
		for _, f := range rec.Fields {
			if _, ok := selected[f]; ok {
				c.Satisfied = append(c.Satisfied, f)
			} else {
				c.Missing = append(c.Missing, f)
			}
		}
		out[id] = c
	}
	return out
}

// ComputableSet filters a derivation down to the set of computable ids.
func ComputableSet(derived map[model.IndicatorID]Computability) map[model.IndicatorID]struct{} {
	out := make(map[model.IndicatorID]struct{})
	for id, c := range derived {
		if c.Computable() {
			out[id] = struct{}{}
		}
	}
	return out
}
