// Package model defines the core data types for fieldlens: raw mapping rows,
// normalized triples, and the per-indicator record built from them.
package model

import "strings"

// FieldID identifies a data field that can be collected from a source.
type FieldID string

// IndicatorID identifies an indicator computable from a set of fields.
type IndicatorID string

// UsecaseID identifies the use case category an indicator belongs to.
// The empty value means the indicator has no known use case.
type UsecaseID string

// Row is one raw record from a mapping source (CSV, JSONL, or SQLite).
// Values may be blank or padded; Normalize turns rows into Triples.
type Row struct {
	Fields    string `json:"fields" yaml:"fields"`
	Indicator string `json:"indicator" yaml:"indicator"`
	Usecase   string `json:"usecase" yaml:"usecase"`
}

// Trimmed returns the row with all three values whitespace-trimmed.
func (r Row) Trimmed() Row {
	return Row{
		Fields:    strings.TrimSpace(r.Fields),
		Indicator: strings.TrimSpace(r.Indicator),
		Usecase:   strings.TrimSpace(r.Usecase),
	}
}

// Complete reports whether the row carries both a field and an indicator
// after trimming. Incomplete rows are expected noise in hand-maintained
// mapping files and are dropped silently during ingestion.
func (r Row) Complete() bool {
	t := r.Trimmed()
	return t.Fields != "" && t.Indicator != ""
}

// Triple is one normalized mapping fact: the indicator needs the field,
// and the indicator belongs to the use case (which may be empty).
type Triple struct {
	Field     FieldID
	Indicator IndicatorID
	Usecase   UsecaseID
}

// IndicatorRecord describes one distinct indicator: its use case and the
// fields it requires, in the order they were first seen during ingestion.
type IndicatorRecord struct {
	ID      IndicatorID
	Usecase UsecaseID
	Fields  []FieldID
}

// Requires reports whether the indicator needs the given field.
func (r *IndicatorRecord) Requires(f FieldID) bool {
	for _, have := range r.Fields {
		if have == f {
			return true
		}
	}
	return false
}
