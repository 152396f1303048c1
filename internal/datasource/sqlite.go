package datasource

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/fieldlens/fieldlens/pkg/model"
)

// SQLiteReader provides read access to a mapping SQLite database.
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a SQLite database for reading.
func NewSQLiteReader(source DataSource) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	return &SQLiteReader{db: db, path: source.Path}, nil
}

// Close closes the database connection.
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadRows reads all mapping rows from the database. The usecase column is
// optional; databases without it fall back to a two-column query.
func (r *SQLiteReader) LoadRows() ([]model.Row, error) {
	rows, err := r.db.Query(`SELECT fields, indicator, usecase FROM mapping`)
	if err != nil {
		return r.loadRowsSimple()
	}
	defer rows.Close()

	var out []model.Row
	for rows.Next() {
		var fields, indicator, usecase sql.NullString
		if err := rows.Scan(&fields, &indicator, &usecase); err != nil {
			continue
		}
		out = append(out, model.Row{
			Fields:    fields.String,
			Indicator: indicator.String,
			Usecase:   usecase.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mapping rows: %w", err)
	}
	return out, nil
}

// loadRowsSimple is the fallback for databases without a usecase column.
func (r *SQLiteReader) loadRowsSimple() ([]model.Row, error) {
	rows, err := r.db.Query(`SELECT fields, indicator FROM mapping`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var out []model.Row
	for rows.Next() {
		var fields, indicator sql.NullString
		if err := rows.Scan(&fields, &indicator); err != nil {
			continue
		}
		out = append(out, model.Row{Fields: fields.String, Indicator: indicator.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mapping rows: %w", err)
	}
	return out, nil
}

// CountRows returns the number of mapping rows in the database.
func (r *SQLiteReader) CountRows() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM mapping`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
