package engine

import (
	"testing"

	"github.com/fieldlens/fieldlens/pkg/model"
)

func TestNormalize_TrimsValues(t *testing.T) {
	rows := []model.Row{
		{Fields: "  tender/value  ", Indicator: " R024 ", Usecase: " pricing "},
	}

	triples := Normalize(rows)
	if len(triples) != 1 {
		t.Fatalf("expected 1 triple, got %d", len(triples))
	}
	got := triples[0]
	if got.Field != "tender/value" || got.Indicator != "R024" || got.Usecase != "pricing" {
		t.Errorf("values not trimmed: %+v", got)
	}
}

func TestNormalize_DropsIncompleteRows(t *testing.T) {
	rows := []model.Row{
		{Fields: "f1", Indicator: "i1", Usecase: "u1"},
		{Fields: "", Indicator: "i2"},
		{Fields: "f3", Indicator: "   "},
		{Fields: "   ", Indicator: ""},
		{Fields: "f4", Indicator: "i4"},
	}

	triples := Normalize(rows)
	if len(triples) != 2 {
		t.Fatalf("expected 2 triples, got %d", len(triples))
	}
	if triples[0].Indicator != "i1" || triples[1].Indicator != "i4" {
		t.Errorf("wrong survivors: %+v", triples)
	}
}

func TestNormalize_EmptyUsecaseIsAllowed(t *testing.T) {
	triples := Normalize([]model.Row{{Fields: "f1", Indicator: "i1"}})
	if len(triples) != 1 {
		t.Fatalf("expected 1 triple, got %d", len(triples))
	}
	if triples[0].Usecase != "" {
		t.Errorf("expected empty usecase, got %q", triples[0].Usecase)
	}
}

func TestNormalizeWithOptions_ReportsDroppedRows(t *testing.T) {
	var warnings []string
	rows := []model.Row{
		{Fields: "f1", Indicator: "i1"},
		{Fields: "", Indicator: "i2"},
		{Fields: "f3", Indicator: ""},
	}

	NormalizeWithOptions(rows, NormalizeOptions{
		WarningHandler: func(msg string) { warnings = append(warnings, msg) },
	})

	if len(warnings) != 2 {
		t.Errorf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
}
