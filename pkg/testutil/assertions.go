// Package testutil provides fixture generators and assertions for
// field-to-indicator mapping tests. All generators produce deterministic
// output for reproducible tests.
package testutil

import (
	"testing"

	"github.com/fieldlens/fieldlens/pkg/model"
)

// AssertRowCount verifies the expected number of rows.
func AssertRowCount(t *testing.T, rows []model.Row, expected int) {
	t.Helper()
	if len(rows) != expected {
		t.Errorf("expected %d rows, got %d", expected, len(rows))
	}
}

// AssertAllComplete verifies every row carries a field and an indicator.
func AssertAllComplete(t *testing.T, rows []model.Row) {
	t.Helper()
	for i, row := range rows {
		if !row.Complete() {
			t.Errorf("row %d incomplete: fields=%q indicator=%q", i, row.Fields, row.Indicator)
		}
	}
}

// AssertTripleExists verifies a specific field-indicator pair is present.
func AssertTripleExists(t *testing.T, triples []model.Triple, field model.FieldID, indicator model.IndicatorID) {
	t.Helper()
	for _, tr := range triples {
		if tr.Field == field && tr.Indicator == indicator {
			return
		}
	}
	t.Errorf("expected triple (%s, %s) not found in %d triples", field, indicator, len(triples))
}

// AssertNoDuplicateTriples verifies each field-indicator pair appears once.
func AssertNoDuplicateTriples(t *testing.T, triples []model.Triple) {
	t.Helper()
	type pair struct {
		f model.FieldID
		i model.IndicatorID
	}
	seen := make(map[pair]bool)
	for _, tr := range triples {
		p := pair{tr.Field, tr.Indicator}
		if seen[p] {
			t.Errorf("duplicate triple: (%s, %s)", tr.Field, tr.Indicator)
		}
		seen[p] = true
	}
}
