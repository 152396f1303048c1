// Package loader reads field/indicator mapping datasets from disk. It
// understands CSV files with fields/indicator/usecase columns and JSONL
// files with one row object per line. Malformed rows are skipped with a
// warning; a payload that is not tabular at all (markup, missing header)
// is a load failure.
package loader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/fieldlens/fieldlens/pkg/model"
)

// DataDirEnvVar overrides where mapping files are looked up.
const DataDirEnvVar = "FL_DATA_DIR"

// PreferredNames is the lookup priority for mapping files in a data dir.
var PreferredNames = []string{"mapping.csv", "mapping.jsonl"}

// ErrNotTabular marks payloads that cannot be interpreted as mapping rows
// at all, e.g. an HTML error page saved where the dataset should be.
var ErrNotTabular = errors.New("payload is not tabular mapping data")

// ParseOptions configures dataset parsing.
type ParseOptions struct {
	// WarningHandler receives messages about skipped rows and lines.
	// If nil, warnings are printed to os.Stderr.
	WarningHandler func(string)
}

func (o ParseOptions) warn() func(string) {
	if o.WarningHandler != nil {
		return o.WarningHandler
	}
	return func(msg string) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
	}
}

// GetDataDir returns the mapping data directory, respecting FL_DATA_DIR.
// Falls back to the given path, or the current directory if empty.
func GetDataDir(path string) (string, error) {
	if envDir := os.Getenv(DataDirEnvVar); envDir != "" {
		return envDir, nil
	}
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current working directory: %w", err)
		}
	}
	return path, nil
}

// FindMappingPath locates a mapping file in the given directory, trying
// PreferredNames in order and skipping empty files.
func FindMappingPath(dir string) (string, error) {
	for _, name := range PreferredNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			return path, nil
		}
	}
	return "", fmt.Errorf("no mapping file found in %s (tried %s)", dir, strings.Join(PreferredNames, ", "))
}

// LoadRows reads mapping rows from a file, dispatching on the extension.
func LoadRows(path string) ([]model.Row, error) {
	return LoadRowsWithOptions(path, ParseOptions{})
}

// LoadRowsWithOptions is LoadRows with custom parse options.
func LoadRowsWithOptions(path string, opts ParseOptions) ([]model.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mapping file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return ParseJSONL(f, opts)
	default:
		return ParseCSV(f, opts)
	}
}

// ParseCSV parses CSV content with a header row naming at least the
// fields and indicator columns. Column order is free; matching is
// case-insensitive. A usecase column is optional.
func ParseCSV(r io.Reader, opts ParseOptions) ([]model.Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading mapping stream: %w", err)
	}
	data = stripBOM(data)
	if looksLikeMarkup(data) {
		return nil, fmt.Errorf("%w: payload looks like markup", ErrNotTabular)
	}

	records, err := readCSVRecords(data, opts.warn())
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrNotTabular)
	}

	fieldsCol, indicatorCol, usecaseCol := -1, -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "fields", "field":
			fieldsCol = i
		case "indicator":
			indicatorCol = i
		case "usecase", "use case":
			usecaseCol = i
		}
	}
	if fieldsCol < 0 || indicatorCol < 0 {
		return nil, fmt.Errorf("%w: header lacks fields/indicator columns", ErrNotTabular)
	}

	rows := make([]model.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		var row model.Row
		if fieldsCol < len(rec) {
			row.Fields = rec[fieldsCol]
		}
		if indicatorCol < len(rec) {
			row.Indicator = rec[indicatorCol]
		}
		if usecaseCol >= 0 && usecaseCol < len(rec) {
			row.Usecase = rec[usecaseCol]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseJSONL parses JSONL content, one row object per line. Malformed
// lines are skipped with a warning; if nothing parses out of a non-empty
// payload the whole load fails.
func ParseJSONL(r io.Reader, opts ParseOptions) ([]model.Row, error) {
	warn := opts.warn()

	var rows []model.Row
	sawContent := false
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if lineNum == 1 {
			line = stripBOM(line)
		}
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		sawContent = true

		var row model.Row
		if err := json.Unmarshal(line, &row); err != nil {
			warn(fmt.Sprintf("skipping malformed JSON on line %d: %v", lineNum, err))
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading mapping stream at line %d: %w", lineNum, err)
	}

	if sawContent && len(rows) == 0 {
		return nil, fmt.Errorf("%w: no row parsed from %d lines", ErrNotTabular, lineNum)
	}
	return rows, nil
}

// stripBOM removes the UTF-8 Byte Order Mark if present.
func stripBOM(b []byte) []byte {
	if bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) {
		return b[3:]
	}
	return b
}

// looksLikeMarkup reports whether the payload starts like HTML/XML, the
// usual shape of a saved error page.
func looksLikeMarkup(b []byte) bool {
	trimmed := bytes.TrimLeft(b, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '<'
}
