// Package probe produces a read-only quality report over the raw table
// before cleaning: missing-value counts, content duplicates, product
// name variants, and basic numeric stats. It never modifies records;
// its output gives the cleaning summary a baseline.
package probe

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/zeebo/xxh3"

	"salesetl/internal/table"
)

// NumericStats summarizes one numeric column, ignoring missing cells.
type NumericStats struct {
	Present int             `json:"present"`
	Missing int             `json:"missing"`
	Min     decimal.Decimal `json:"min"`
	Max     decimal.Decimal `json:"max"`
	Mean    decimal.Decimal `json:"mean"`
}

// Report is the raw-data quality assessment.
type Report struct {
	Rows              int                     `json:"rows"`
	MissingByColumn   map[string]int          `json:"missing_by_column"`
	DuplicateRows     int                     `json:"duplicate_rows"`
	ProductNames      []string                `json:"product_name_variants"`
	InvalidDateMarker int                     `json:"invalid_date_markers"`
	Numeric           map[string]NumericStats `json:"numeric"`
}

// Assess scans the raw table and builds a Report.
func Assess(recs []table.Record) Report {
	rep := Report{
		Rows:            len(recs),
		MissingByColumn: make(map[string]int),
		Numeric:         make(map[string]NumericStats),
	}

	seen := make(map[uint64]struct{}, len(recs))
	names := make(map[string]struct{})
	var q, p, t accumulator

	for _, r := range recs {
		if !r.Quantity.Valid {
			rep.MissingByColumn[table.ColQuantity]++
		}
		if !r.PricePerUnit.Valid {
			rep.MissingByColumn[table.ColPricePerUnit]++
		}
		if !r.TotalPrice.Valid {
			rep.MissingByColumn[table.ColTotalPrice]++
		}
		if r.RawDate == "" {
			rep.MissingByColumn[table.ColDate]++
		}
		if r.RawDate == "Invalid Date" {
			rep.InvalidDateMarker++
		}

		h := xxh3.HashString(r.ContentKey())
		if _, dup := seen[h]; dup {
			rep.DuplicateRows++
		}
		seen[h] = struct{}{}

		names[r.ProductName] = struct{}{}
		q.add(r.Quantity)
		p.add(r.PricePerUnit)
		t.add(r.TotalPrice)
	}

	rep.ProductNames = make([]string, 0, len(names))
	for n := range names {
		rep.ProductNames = append(rep.ProductNames, n)
	}
	sort.Strings(rep.ProductNames)

	rep.Numeric[table.ColQuantity] = q.stats()
	rep.Numeric[table.ColPricePerUnit] = p.stats()
	rep.Numeric[table.ColTotalPrice] = t.stats()
	return rep
}

type accumulator struct {
	present  int
	missing  int
	min, max decimal.Decimal
	sum      decimal.Decimal
}

func (a *accumulator) add(v decimal.NullDecimal) {
	if !v.Valid {
		a.missing++
		return
	}
	d := v.Decimal
	if a.present == 0 || d.LessThan(a.min) {
		a.min = d
	}
	if a.present == 0 || d.GreaterThan(a.max) {
		a.max = d
	}
	a.sum = a.sum.Add(d)
	a.present++
}

func (a accumulator) stats() NumericStats {
	s := NumericStats{Present: a.present, Missing: a.missing, Min: a.min, Max: a.max}
	if a.present > 0 {
		s.Mean = a.sum.Div(decimal.NewFromInt(int64(a.present))).Round(2)
	}
	return s
}
