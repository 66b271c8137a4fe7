// Package report builds the presentation-only views over the original
// and cleaned CSVs: a positional side-by-side comparison with
// per-column difference flags, and aggregate sales statistics. Nothing
// here corrects data.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"salesetl/internal/table"
)

// numericColumns are compared by parsed value, with a string fallback
// when either side fails to parse.
var numericColumns = map[string]bool{
	table.ColQuantity:     true,
	table.ColPricePerUnit: true,
	table.ColTotalPrice:   true,
}

// RowDiff pairs one original row with the cleaned row at the same
// position. Original or Cleaned is nil past the end of its file.
type RowDiff struct {
	RowNumber int               `json:"row_number"`
	Original  map[string]string `json:"original,omitempty"`
	Cleaned   map[string]string `json:"cleaned,omitempty"`
	Diffs     []string          `json:"diffs,omitempty"`
	Dropped   bool              `json:"is_dropped"`
	New       bool              `json:"is_new"`
}

// CompareStats is the comparison header block.
type CompareStats struct {
	OriginalCount      int     `json:"original_count"`
	CleanedCount       int     `json:"cleaned_count"`
	RowsRemoved        int     `json:"rows_removed"`
	CleaningPercentage float64 `json:"cleaning_percentage"`
}

// Comparison is the full side-by-side view.
type Comparison struct {
	Stats CompareStats `json:"stats"`
	Rows  []RowDiff    `json:"rows"`
}

// Compare pairs rows by position. limit bounds the rows rendered
// (0 = all); the stats always cover the full files.
func Compare(original, cleaned []map[string]string, limit int) Comparison {
	stats := CompareStats{
		OriginalCount: len(original),
		CleanedCount:  len(cleaned),
		RowsRemoved:   len(original) - len(cleaned),
	}
	if len(original) > 0 {
		pct := (1 - float64(len(cleaned))/float64(len(original))) * 100
		stats.CleaningPercentage = float64(int(pct*10+0.5)) / 10
	}

	n := len(original)
	if len(cleaned) > n {
		n = len(cleaned)
	}
	if limit > 0 && n > limit {
		n = limit
	}

	rows := make([]RowDiff, 0, n)
	for i := 0; i < n; i++ {
		var orig, clean map[string]string
		if i < len(original) {
			orig = original[i]
		}
		if i < len(cleaned) {
			clean = cleaned[i]
		}
		rd := RowDiff{
			RowNumber: i + 1,
			Original:  orig,
			Cleaned:   clean,
			Dropped:   orig != nil && clean == nil,
			New:       clean != nil && orig == nil,
		}
		if orig != nil && clean != nil {
			for _, col := range table.Columns {
				if differs(col, orig[col], clean[col]) {
					rd.Diffs = append(rd.Diffs, col)
				}
			}
		}
		rows = append(rows, rd)
	}
	return Comparison{Stats: stats, Rows: rows}
}

func differs(col, a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if numericColumns[col] {
		da, errA := decimal.NewFromString(a)
		db, errB := decimal.NewFromString(b)
		if errA == nil && errB == nil {
			return !da.Equal(db)
		}
	}
	return a != b
}

// ReadCSVFile loads a CSV into positional row maps keyed by header. A
// missing file is "no data" for reporting purposes: it returns an empty
// slice and no error.
func ReadCSVFile(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header %s: %w", path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	var rows []map[string]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		m := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				m[strings.TrimSpace(h)] = rec[i]
			}
		}
		rows = append(rows, m)
	}
	return rows, nil
}
