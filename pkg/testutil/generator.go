package testutil

import (
	"fmt"
	"math/rand"

	"github.com/fieldlens/fieldlens/pkg/model"
)

// GeneratorConfig controls mapping row generation.
type GeneratorConfig struct {
	Seed            int64  // Random seed for determinism (0 = 42)
	FieldPrefix     string // Prefix for field IDs (default: "field")
	IndicatorPrefix string // Prefix for indicator IDs (default: "ind")
	Usecases        []string
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:            42,
		FieldPrefix:     "field",
		IndicatorPrefix: "ind",
		Usecases:        []string{"Quality", "Throughput", "Cost"},
	}
}

// Generator creates deterministic mapping fixtures.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.FieldPrefix == "" {
		cfg.FieldPrefix = "field"
	}
	if cfg.IndicatorPrefix == "" {
		cfg.IndicatorPrefix = "ind"
	}
	if len(cfg.Usecases) == 0 {
		cfg.Usecases = []string{"Quality"}
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// Bipartite generates rows mapping nFields fields onto nIndicators
// indicators. Each indicator requires between 1 and maxRequires distinct
// fields. Every indicator gets at least one row, so the result builds an
// index with exactly nIndicators indicators.
func (g *Generator) Bipartite(nFields, nIndicators, maxRequires int) []model.Row {
	if maxRequires < 1 {
		maxRequires = 1
	}
	if maxRequires > nFields {
		maxRequires = nFields
	}

	fields := make([]string, nFields)
	for i := range fields {
		fields[i] = fmt.Sprintf("%s-%03d", g.cfg.FieldPrefix, i+1)
	}

	var rows []model.Row
	for i := 0; i < nIndicators; i++ {
		indicator := fmt.Sprintf("%s-%03d", g.cfg.IndicatorPrefix, i+1)
		usecase := g.cfg.Usecases[i%len(g.cfg.Usecases)]

		need := 1 + g.rng.Intn(maxRequires)
		perm := g.rng.Perm(nFields)
		for _, fi := range perm[:need] {
			rows = append(rows, model.Row{
				Fields:    fields[fi],
				Indicator: indicator,
				Usecase:   usecase,
			})
		}
	}
	return rows
}

// Chain generates rows where indicator i requires fields 1..i. Useful for
// exercising partial satisfaction: selecting the first k fields makes
// exactly the first k indicators computable.
func (g *Generator) Chain(n int) []model.Row {
	var rows []model.Row
	for i := 1; i <= n; i++ {
		indicator := fmt.Sprintf("%s-%03d", g.cfg.IndicatorPrefix, i)
		for f := 1; f <= i; f++ {
			rows = append(rows, model.Row{
				Fields:    fmt.Sprintf("%s-%03d", g.cfg.FieldPrefix, f),
				Indicator: indicator,
				Usecase:   g.cfg.Usecases[0],
			})
		}
	}
	return rows
}
