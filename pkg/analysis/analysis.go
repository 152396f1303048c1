// Package analysis computes structural statistics over the field to
// indicator mapping, treated as a directed bipartite graph with edges
// from each field to the indicators that require it.
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/fieldlens/fieldlens/pkg/engine"
	"github.com/fieldlens/fieldlens/pkg/model"
)

// pageRankDamping matches the conventional value used for web graphs.
const (
	pageRankDamping   = 0.85
	pageRankTolerance = 1e-6
)

// FieldScore pairs a field with a centrality score.
type FieldScore struct {
	Field model.FieldID
	Score float64
}

// MappingStats summarizes the bipartite structure of an index.
type MappingStats struct {
	FieldCount     int
	IndicatorCount int
	EdgeCount      int
	// Density is edges over fields*indicators, the filled fraction of
	// the bipartite adjacency matrix.
	Density float64
	// MaxRequires is the largest dependency set of any indicator.
	MaxRequires int
	// MeanRequires is the average dependency set size.
	MeanRequires float64
	// OutDegree maps each field to the number of indicators it feeds.
	OutDegree map[model.FieldID]int
	// FieldRank holds fields ordered by PageRank over the bipartite
	// graph, highest first. A high rank marks a field whose loss would
	// invalidate many or heavily-depended-on indicators.
	FieldRank []FieldScore
}

// Analyzer builds gonum graphs from an index.
type Analyzer struct {
	idx      *engine.Index
	g        *simple.DirectedGraph
	idToNode map[string]int64
	nodeToID map[int64]string
}

// NewAnalyzer constructs an analyzer over the given index.
func NewAnalyzer(idx *engine.Index) *Analyzer {
	g := simple.NewDirectedGraph()
	fields := idx.Fields()
	indicators := idx.Indicators()

	idToNode := make(map[string]int64, len(fields)+len(indicators))
	nodeToID := make(map[int64]string, len(fields)+len(indicators))

	add := func(key string) {
		n := g.NewNode()
		g.AddNode(n)
		idToNode[key] = n.ID()
		nodeToID[n.ID()] = key
	}

	// Field and indicator namespaces can collide on raw names, so key
	// nodes with a kind prefix.
	for _, f := range fields {
		add("f:" + string(f))
	}
	for _, ind := range indicators {
		add("i:" + string(ind))
	}

	for _, ind := range indicators {
		rec := idx.Record(ind)
		if rec == nil {
			continue
		}
		v := idToNode["i:"+string(ind)]
		for _, f := range rec.Fields {
			u := idToNode["f:"+string(f)]
			g.SetEdge(g.NewEdge(g.Node(u), g.Node(v)))
		}
	}

	return &Analyzer{idx: idx, g: g, idToNode: idToNode, nodeToID: nodeToID}
}

// Analyze computes all statistics synchronously.
func (a *Analyzer) Analyze() MappingStats {
	fields := a.idx.Fields()
	indicators := a.idx.Indicators()

	stats := MappingStats{
		FieldCount:     len(fields),
		IndicatorCount: len(indicators),
		EdgeCount:      a.idx.EdgeCount(),
		OutDegree:      make(map[model.FieldID]int, len(fields)),
	}

	if len(fields) > 0 && len(indicators) > 0 {
		stats.Density = float64(stats.EdgeCount) / float64(len(fields)*len(indicators))
	}

	for _, f := range fields {
		stats.OutDegree[f] = a.idx.IndicatorCount(f)
	}

	var total int
	for _, ind := range indicators {
		rec := a.idx.Record(ind)
		if rec == nil {
			continue
		}
		n := len(rec.Fields)
		total += n
		if n > stats.MaxRequires {
			stats.MaxRequires = n
		}
	}
	if len(indicators) > 0 {
		stats.MeanRequires = float64(total) / float64(len(indicators))
	}

	stats.FieldRank = a.fieldRank(fields)
	return stats
}

// fieldRank runs PageRank on the reversed graph so that score flows from
// indicators back to the fields they require.
func (a *Analyzer) fieldRank(fields []model.FieldID) []FieldScore {
	if a.g.Nodes().Len() == 0 {
		return nil
	}

	rev := simple.NewDirectedGraph()
	nodes := a.g.Nodes()
	for nodes.Next() {
		rev.AddNode(nodes.Node())
	}
	edges := a.g.Edges()
	for edges.Next() {
		e := edges.Edge()
		rev.SetEdge(rev.NewEdge(e.To(), e.From()))
	}

	ranks := network.PageRank(rev, pageRankDamping, pageRankTolerance)

	scores := make([]FieldScore, 0, len(fields))
	for _, f := range fields {
		id, ok := a.idToNode["f:"+string(f)]
		if !ok {
			continue
		}
		scores = append(scores, FieldScore{Field: f, Score: ranks[id]})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Field < scores[j].Field
	})
	return scores
}

// TopFields returns the n highest-ranked fields from precomputed stats.
func (s MappingStats) TopFields(n int) []FieldScore {
	if n > len(s.FieldRank) {
		n = len(s.FieldRank)
	}
	return s.FieldRank[:n]
}
