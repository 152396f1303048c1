package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// readCSVRecords reads all CSV records, tolerating ragged rows. Rows the
// csv reader cannot recover are skipped with a warning rather than failing
// the whole load, since hand-maintained mapping files accumulate noise.
func readCSVRecords(data []byte, warn func(string)) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if parseErr, ok := err.(*csv.ParseError); ok {
				warn(fmt.Sprintf("skipping unreadable CSV line %d: %v", parseErr.Line, parseErr.Err))
				continue
			}
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
