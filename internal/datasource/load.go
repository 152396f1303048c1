package datasource

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fieldlens/fieldlens/pkg/loader"
	"github.com/fieldlens/fieldlens/pkg/metrics"
	"github.com/fieldlens/fieldlens/pkg/model"
)

// LoadRows discovers sources in the data directory (or FL_DATA_DIR) and
// loads rows from the best valid one. Returns the rows together with the
// source they came from, so callers can watch the right file.
func LoadRows(dataDir string) ([]model.Row, DataSource, error) {
	defer metrics.Timer(metrics.SourceDiscovery)()
	sources, err := DiscoverSources(DiscoveryOptions{
		DataDir:                dataDir,
		ValidateAfterDiscovery: true,
	})
	if err != nil {
		return nil, DataSource{}, err
	}
	if len(sources) == 0 {
		dir, _ := loader.GetDataDir(dataDir)
		return nil, DataSource{}, fmt.Errorf("no valid mapping source found in %s", dir)
	}

	best := sources[0]
	rows, err := readSource(best)
	if err != nil {
		return nil, best, fmt.Errorf("loading %s: %w", best.Path, err)
	}
	return rows, best, nil
}

// LoadRowsFromFile loads rows from an explicit path, skipping discovery.
func LoadRowsFromFile(path string) ([]model.Row, error) {
	return readSource(DataSource{Path: path, Type: typeForPath(path)})
}

func readSource(s DataSource) ([]model.Row, error) {
	defer metrics.Timer(metrics.SourceLoad)()
	if s.Type == SourceTypeSQLite {
		r, err := NewSQLiteReader(s)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return r.LoadRows()
	}
	return loader.LoadRowsWithOptions(s.Path, loader.ParseOptions{})
}

func typeForPath(path string) SourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite":
		return SourceTypeSQLite
	case ".jsonl", ".ndjson":
		return SourceTypeJSONL
	default:
		return SourceTypeCSV
	}
}
