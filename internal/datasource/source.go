// Package datasource discovers, validates, and selects the freshest valid
// mapping source for fieldlens: SQLite databases, CSV files, and JSONL
// files in the data directory.
package datasource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fieldlens/fieldlens/pkg/loader"
)

// SourceType identifies the type of mapping source.
type SourceType string

const (
	// SourceTypeSQLite is a SQLite database (mapping.db).
	SourceTypeSQLite SourceType = "sqlite"
	// SourceTypeCSV is a CSV mapping file.
	SourceTypeCSV SourceType = "csv"
	// SourceTypeJSONL is a JSONL mapping file.
	SourceTypeJSONL SourceType = "jsonl"
)

// Priority values for source types (higher = more authoritative).
const (
	PrioritySQLite = 100
	PriorityCSV    = 80
	PriorityJSONL  = 50
)

// DataSource represents a potential source of mapping rows.
type DataSource struct {
	// Type identifies the source type.
	Type SourceType `json:"type"`
	// Path is the absolute path to the source file.
	Path string `json:"path"`
	// Priority determines preference when timestamps are equal (higher = preferred).
	Priority int `json:"priority"`
	// ModTime is the last modification time of the source.
	ModTime time.Time `json:"mod_time"`
	// Valid indicates whether the source passed validation.
	Valid bool `json:"valid"`
	// ValidationError describes why validation failed (if Valid is false).
	ValidationError string `json:"validation_error,omitempty"`
	// RowCount is the number of rows in the source (set during validation).
	RowCount int `json:"row_count"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
}

// String returns a human-readable description of the source.
func (s DataSource) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s, rows=%d, %s)",
		s.Path, s.Type, s.Priority, s.ModTime.Format(time.RFC3339), s.RowCount, status)
}

// DiscoveryOptions configures source discovery behavior.
type DiscoveryOptions struct {
	// DataDir is the mapping data directory (optional, auto-detected if empty).
	DataDir string
	// ValidateAfterDiscovery runs validation on each discovered source.
	ValidateAfterDiscovery bool
	// IncludeInvalid includes sources that failed validation in results.
	IncludeInvalid bool
	// Verbose enables detailed logging during discovery.
	Verbose bool
	// Logger receives log messages when Verbose is true.
	Logger func(msg string)
}

// DiscoverSources finds all potential mapping sources in the data directory,
// freshest first with type priority breaking mtime ties.
func DiscoverSources(opts DiscoveryOptions) ([]DataSource, error) {
	if opts.Logger == nil {
		opts.Logger = func(string) {}
	}

	dataDir, err := loader.GetDataDir(opts.DataDir)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		opts.Logger(fmt.Sprintf("Discovering sources in: %s", dataDir))
	}

	candidates := []struct {
		name     string
		typ      SourceType
		priority int
	}{
		{"mapping.db", SourceTypeSQLite, PrioritySQLite},
		{"mapping.csv", SourceTypeCSV, PriorityCSV},
		{"mapping.jsonl", SourceTypeJSONL, PriorityJSONL},
	}

	var sources []DataSource
	for _, c := range candidates {
		path := filepath.Join(dataDir, c.name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		sources = append(sources, DataSource{
			Type:     c.typ,
			Path:     path,
			Priority: c.priority,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		})
		if opts.Verbose {
			opts.Logger(fmt.Sprintf("Found %s: %s (mod=%s)", c.typ, path, info.ModTime().Format(time.RFC3339)))
		}
	}

	if opts.ValidateAfterDiscovery {
		// Candidate validation is independent per file; run it concurrently.
		g, _ := errgroup.WithContext(context.Background())
		for i := range sources {
			g.Go(func() error {
				if err := ValidateSource(&sources[i]); err != nil && opts.Verbose {
					opts.Logger(fmt.Sprintf("Validation failed for %s: %v", sources[i].Path, err))
				}
				return nil
			})
		}
		_ = g.Wait()

		if !opts.IncludeInvalid {
			var valid []DataSource
			for _, s := range sources {
				if s.Valid {
					valid = append(valid, s)
				}
			}
			sources = valid
		}
	}

	sort.Slice(sources, func(i, j int) bool {
		if sources[i].ModTime.Equal(sources[j].ModTime) {
			return sources[i].Priority > sources[j].Priority
		}
		return sources[i].ModTime.After(sources[j].ModTime)
	})

	if opts.Verbose {
		opts.Logger(fmt.Sprintf("Discovered %d sources", len(sources)))
	}
	return sources, nil
}

// ValidateSource checks that a source can actually be read as mapping rows
// and records its row count. The source is updated in place.
func ValidateSource(s *DataSource) error {
	rows, err := readSource(*s)
	if err != nil {
		s.Valid = false
		s.ValidationError = err.Error()
		return err
	}
	s.Valid = true
	s.ValidationError = ""
	s.RowCount = len(rows)
	return nil
}
