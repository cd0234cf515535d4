// Package export serializes flattened review rows to CSV and drives the
// fetch-flatten-write pipeline.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/reviewkit/klavex/internal/extract"
)

// Result reports a completed export.
type Result struct {
	Rows int
	Path string
}

// Header computes the output columns: the fixed base columns first, then
// dynamic columns in the order their first carrying row appears. Dynamic
// columns introduced by the same row are sorted so the header is
// deterministic regardless of map iteration order.
func Header(rows []extract.Row) []string {
	header := extract.BaseColumns()

	seen := make(map[string]bool, len(header))
	for _, col := range header {
		seen[col] = true
	}

	for _, row := range rows {
		var extra []string
		for col := range row {
			if !seen[col] {
				extra = append(extra, col)
			}
		}
		sort.Strings(extra)
		for _, col := range extra {
			seen[col] = true
			header = append(header, col)
		}
	}
	return header
}

// WriteCSV writes all rows to path as UTF-8 comma-delimited CSV, one header
// line then one line per row. Rows missing a column emit an empty cell. On
// failure a partial file may remain on disk; it is not cleaned up.
func WriteCSV(rows []extract.Row, path string) (*Result, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	header := Header(rows)

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	record := make([]string, len(header))
	for _, row := range rows {
		for i, col := range header {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	return &Result{Rows: len(rows), Path: path}, nil
}
