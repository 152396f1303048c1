package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCSV_HeaderDrivenColumns(t *testing.T) {
	content := "usecase,indicator,fields\npricing,R024,tender/value\n,R025,awards/date\n"

	rows, err := ParseCSV(strings.NewReader(content), ParseOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Fields != "tender/value" || rows[0].Indicator != "R024" || rows[0].Usecase != "pricing" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Usecase != "" {
		t.Errorf("row 1 usecase = %q, want empty", rows[1].Usecase)
	}
}

func TestParseCSV_OptionalUsecaseColumn(t *testing.T) {
	content := "fields,indicator\nf1,i1\n"

	rows, err := ParseCSV(strings.NewReader(content), ParseOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Usecase != "" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestParseCSV_RaggedRowsTolerated(t *testing.T) {
	content := "fields,indicator,usecase\nf1,i1,u1\nf2,i2\nf3\n"

	rows, err := ParseCSV(strings.NewReader(content), ParseOptions{WarningHandler: func(string) {}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Short rows come through with blanks; ingestion drops the incomplete ones.
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1].Fields != "f2" || rows[1].Indicator != "i2" || rows[1].Usecase != "" {
		t.Errorf("row 1 = %+v", rows[1])
	}
	if rows[2].Indicator != "" {
		t.Errorf("row 2 = %+v, want blank indicator", rows[2])
	}
}

func TestParseCSV_MarkupIsFatal(t *testing.T) {
	content := "<!DOCTYPE html><html><body>404</body></html>"

	_, err := ParseCSV(strings.NewReader(content), ParseOptions{})
	if !errors.Is(err, ErrNotTabular) {
		t.Errorf("expected ErrNotTabular, got %v", err)
	}
}

func TestParseCSV_MissingHeaderIsFatal(t *testing.T) {
	content := "foo,bar\n1,2\n"

	_, err := ParseCSV(strings.NewReader(content), ParseOptions{})
	if !errors.Is(err, ErrNotTabular) {
		t.Errorf("expected ErrNotTabular, got %v", err)
	}
}

func TestParseCSV_StripsBOM(t *testing.T) {
	content := "\xEF\xBB\xBFfields,indicator,usecase\nf1,i1,u1\n"

	rows, err := ParseCSV(strings.NewReader(content), ParseOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Fields != "f1" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestParseJSONL_Basic(t *testing.T) {
	content := `{"fields":"f1","indicator":"i1","usecase":"u1"}
{"fields":"f2","indicator":"i2"}
`

	rows, err := ParseJSONL(strings.NewReader(content), ParseOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Usecase != "u1" || rows[1].Usecase != "" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestParseJSONL_SkipsMalformedLinesWithWarning(t *testing.T) {
	content := `{"fields":"f1","indicator":"i1"}
not json at all
{"fields":"f2","indicator":"i2"}
`
	var warnings []string
	rows, err := ParseJSONL(strings.NewReader(content), ParseOptions{
		WarningHandler: func(msg string) { warnings = append(warnings, msg) },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(rows))
	}
	if len(warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", warnings)
	}
}

func TestParseJSONL_AllMalformedIsFatal(t *testing.T) {
	content := "garbage\nmore garbage\n"

	_, err := ParseJSONL(strings.NewReader(content), ParseOptions{WarningHandler: func(string) {}})
	if !errors.Is(err, ErrNotTabular) {
		t.Errorf("expected ErrNotTabular, got %v", err)
	}
}

func TestParseJSONL_EmptyInputIsOK(t *testing.T) {
	rows, err := ParseJSONL(strings.NewReader(""), ParseOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestLoadRows_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "mapping.csv")
	if err := os.WriteFile(csvPath, []byte("fields,indicator,usecase\nf1,i1,u1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	rows, err := LoadRows(csvPath)
	if err != nil || len(rows) != 1 {
		t.Fatalf("csv load: rows=%v err=%v", rows, err)
	}

	jsonlPath := filepath.Join(dir, "mapping.jsonl")
	if err := os.WriteFile(jsonlPath, []byte(`{"fields":"f1","indicator":"i1"}`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	rows, err = LoadRows(jsonlPath)
	if err != nil || len(rows) != 1 {
		t.Fatalf("jsonl load: rows=%v err=%v", rows, err)
	}
}

func TestFindMappingPath_PriorityAndEmptySkip(t *testing.T) {
	dir := t.TempDir()

	// Empty csv should be skipped in favor of a non-empty jsonl.
	if err := os.WriteFile(filepath.Join(dir, "mapping.csv"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "mapping.jsonl"), []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	path, err := FindMappingPath(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "mapping.jsonl" {
		t.Errorf("path = %s, want mapping.jsonl", path)
	}
}

func TestFindMappingPath_NoneFound(t *testing.T) {
	if _, err := FindMappingPath(t.TempDir()); err == nil {
		t.Error("expected an error for an empty directory")
	}
}

func TestGetDataDir_EnvOverride(t *testing.T) {
	t.Setenv(DataDirEnvVar, "/custom/data")

	dir, err := GetDataDir("/somewhere/else")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != "/custom/data" {
		t.Errorf("dir = %s, want /custom/data", dir)
	}
}
