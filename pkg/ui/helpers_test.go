package ui

import (
	"testing"

	"github.com/fieldlens/fieldlens/pkg/engine"
	"github.com/fieldlens/fieldlens/pkg/model"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a-very-long-field-name", 10, "a-very-lo…"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestTruncateWideRunes(t *testing.T) {
	// CJK characters are two cells wide
	got := truncate("温度センサー", 7)
	if got == "温度センサー" {
		t.Errorf("12-cell string should be truncated at width 7, got %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Errorf("padRight should not shorten, got %q", got)
	}
}

func TestFilterRows(t *testing.T) {
	rows := []engine.FieldRow{
		{ID: "temperature"},
		{ID: "pressure"},
		{ID: "Temp-Setpoint"},
	}
	key := func(r engine.FieldRow) string { return string(r.ID) }

	if got := filterRows(rows, "", key); len(got) != 3 {
		t.Errorf("empty filter should keep all rows, got %d", len(got))
	}
	got := filterRows(rows, "temp", key)
	if len(got) != 2 {
		t.Fatalf("case-insensitive filter temp should keep 2 rows, got %d", len(got))
	}
	if got[0].ID != "temperature" || got[1].ID != "Temp-Setpoint" {
		t.Errorf("filter should preserve order, got %v", got)
	}
}

func TestMiniBar(t *testing.T) {
	if got := miniBar(0, 4); got != "░░░░" {
		t.Errorf("miniBar(0) = %q", got)
	}
	if got := miniBar(1, 4); got != "████" {
		t.Errorf("miniBar(1) = %q", got)
	}
	if got := miniBar(0.5, 4); got != "██░░" {
		t.Errorf("miniBar(0.5) = %q", got)
	}
	if got := miniBar(2, 3); got != "███" {
		t.Errorf("miniBar clamps above 1, got %q", got)
	}
}

func TestJoinFields(t *testing.T) {
	fields := []model.FieldID{"a", "b", "c", "d"}
	if got := joinFields(fields[:2], 3); got != "a, b" {
		t.Errorf("joinFields = %q", got)
	}
	if got := joinFields(fields, 2); got != "a, b, +2 more" {
		t.Errorf("joinFields with elision = %q", got)
	}
}
