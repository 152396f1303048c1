package analysis

import (
	"math"
	"testing"

	"github.com/fieldlens/fieldlens/pkg/engine"
	"github.com/fieldlens/fieldlens/pkg/model"
	"github.com/fieldlens/fieldlens/pkg/testutil"
)

func buildIndex(t *testing.T, rows []model.Row) *engine.Index {
	t.Helper()
	triples := engine.Normalize(rows)
	return engine.BuildIndex(triples)
}

func TestAnalyzeEmptyIndex(t *testing.T) {
	stats := NewAnalyzer(buildIndex(t, nil)).Analyze()
	if stats.FieldCount != 0 || stats.IndicatorCount != 0 || stats.EdgeCount != 0 {
		t.Errorf("empty index should have zero counts: %+v", stats)
	}
	if stats.Density != 0 {
		t.Errorf("Density = %v, want 0", stats.Density)
	}
	if len(stats.FieldRank) != 0 {
		t.Errorf("FieldRank should be empty, got %v", stats.FieldRank)
	}
}

func TestAnalyzeCounts(t *testing.T) {
	rows := []model.Row{
		{Fields: "f1", Indicator: "i1", Usecase: "U"},
		{Fields: "f2", Indicator: "i1", Usecase: "U"},
		{Fields: "f1", Indicator: "i2", Usecase: "U"},
	}
	stats := NewAnalyzer(buildIndex(t, rows)).Analyze()

	if stats.FieldCount != 2 {
		t.Errorf("FieldCount = %d, want 2", stats.FieldCount)
	}
	if stats.IndicatorCount != 2 {
		t.Errorf("IndicatorCount = %d, want 2", stats.IndicatorCount)
	}
	if stats.EdgeCount != 3 {
		t.Errorf("EdgeCount = %d, want 3", stats.EdgeCount)
	}
	if want := 3.0 / 4.0; math.Abs(stats.Density-want) > 1e-9 {
		t.Errorf("Density = %v, want %v", stats.Density, want)
	}
	if stats.MaxRequires != 2 {
		t.Errorf("MaxRequires = %d, want 2", stats.MaxRequires)
	}
	if want := 1.5; math.Abs(stats.MeanRequires-want) > 1e-9 {
		t.Errorf("MeanRequires = %v, want %v", stats.MeanRequires, want)
	}
	if stats.OutDegree["f1"] != 2 || stats.OutDegree["f2"] != 1 {
		t.Errorf("OutDegree = %v", stats.OutDegree)
	}
}

func TestFieldRankOrdersSharedFieldFirst(t *testing.T) {
	// f1 feeds both indicators, f2 and f3 feed one each.
	rows := []model.Row{
		{Fields: "f1", Indicator: "i1", Usecase: "U"},
		{Fields: "f2", Indicator: "i1", Usecase: "U"},
		{Fields: "f1", Indicator: "i2", Usecase: "U"},
		{Fields: "f3", Indicator: "i2", Usecase: "U"},
	}
	stats := NewAnalyzer(buildIndex(t, rows)).Analyze()

	if len(stats.FieldRank) != 3 {
		t.Fatalf("FieldRank length = %d, want 3", len(stats.FieldRank))
	}
	if stats.FieldRank[0].Field != "f1" {
		t.Errorf("top field = %s, want f1", stats.FieldRank[0].Field)
	}

	top := stats.TopFields(2)
	if len(top) != 2 {
		t.Fatalf("TopFields(2) length = %d", len(top))
	}
	if top[0].Score < top[1].Score {
		t.Error("TopFields should be ordered by descending score")
	}
}

func TestAnalyzeGeneratedFixture(t *testing.T) {
	rows := testutil.New(testutil.DefaultConfig()).Bipartite(12, 8, 4)
	idx := buildIndex(t, rows)
	stats := NewAnalyzer(idx).Analyze()

	if stats.IndicatorCount != 8 {
		t.Errorf("IndicatorCount = %d, want 8", stats.IndicatorCount)
	}
	if stats.EdgeCount != idx.EdgeCount() {
		t.Errorf("EdgeCount = %d, index says %d", stats.EdgeCount, idx.EdgeCount())
	}
	var sum int
	for _, d := range stats.OutDegree {
		sum += d
	}
	if sum != stats.EdgeCount {
		t.Errorf("sum of out-degrees %d should equal edge count %d", sum, stats.EdgeCount)
	}
}
