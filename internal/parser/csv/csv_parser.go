// Package csv reads the raw sales transaction CSV into the in-memory
// table. Parsing is deliberately forgiving at the value level: numeric
// cells that do not parse become missing values for the cleaning passes
// to repair or drop, and dates stay free text until standardization.
// Structural problems (no header, unknown columns) are errors.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"salesetl/internal/cleaner"
	"salesetl/internal/table"
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// Options configures the parser. Zero values give a comma-separated
// file with the canonical header.
type Options struct {
	// Comma is the field delimiter; ',' when zero.
	Comma rune

	// TrimSpace trims surrounding ASCII space from every field value.
	TrimSpace bool
}

// Parser parses sales CSVs according to Options. Safe to reuse across
// inputs; not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser.
func NewParser(opt Options) *Parser {
	if opt.Comma == 0 {
		opt.Comma = ','
	}
	return &Parser{opt: opt}
}

// ParseFile reads and parses path. A missing file is reported as
// cleaner.ErrMissingInput so callers can decide whether that is fatal
// (pipeline input) or just "no data" (reporting).
func (p *Parser) ParseFile(path string) ([]table.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", cleaner.ErrMissingInput, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	recs, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return recs, nil
}

// Parse reads the whole input. The first row must be a header naming
// all eight canonical columns (any order).
func (p *Parser) Parse(r io.Reader) ([]table.Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = p.opt.Comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty input: header row required")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = stripHeaderBOM(header)

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range table.Columns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("header missing column %q", col)
		}
	}

	var out []table.Record
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++
		out = append(out, table.Record{
			TransactionID: p.cell(row, idx[table.ColTransactionID]),
			CustomerID:    p.cell(row, idx[table.ColCustomerID]),
			ProductID:     p.cell(row, idx[table.ColProductID]),
			ProductName:   p.cell(row, idx[table.ColProductName]),
			Quantity:      p.numCell(row, idx[table.ColQuantity]),
			PricePerUnit:  p.numCell(row, idx[table.ColPricePerUnit]),
			TotalPrice:    p.numCell(row, idx[table.ColTotalPrice]),
			RawDate:       p.cell(row, idx[table.ColDate]),
		})
	}
	return out, nil
}

func (p *Parser) cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	v := row[i]
	if p.opt.TrimSpace {
		v = strings.TrimSpace(v)
	}
	return v
}

// numCell parses a numeric cell; empty or malformed values become
// missing so the repair pass can deal with them.
func (p *Parser) numCell(row []string, i int) decimal.NullDecimal {
	v := strings.TrimSpace(p.cell(row, i))
	if v == "" {
		return table.None()
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return table.None()
	}
	return table.D(d)
}

// stripHeaderBOM removes a UTF-8 BOM from the first header cell.
func stripHeaderBOM(headers []string) []string {
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	}
	return headers
}
