// Package export writes the cleaned table back out as a delimited text
// file with the same eight columns as the input, canonically formatted:
// integral quantity, two-decimal prices, ISO dates. Output is fully
// determined by the table contents, so identical runs produce
// byte-identical files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"salesetl/internal/cleaner"
	"salesetl/internal/table"
)

// WriteFile writes the cleaned records to path, replacing any existing
// file. Failures wrap cleaner.ErrSinkWrite.
func WriteFile(path string, recs []table.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", cleaner.ErrSinkWrite, path, err)
	}
	if err := Write(f, recs); err != nil {
		f.Close()
		return fmt.Errorf("%w: write %s: %v", cleaner.ErrSinkWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", cleaner.ErrSinkWrite, path, err)
	}
	return nil
}

// Write emits the header plus one row per record, in table order.
func Write(w io.Writer, recs []table.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Columns); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			r.TransactionID,
			r.CustomerID,
			r.ProductID,
			r.ProductName,
			r.Quantity.Decimal.String(),
			r.PricePerUnit.Decimal.StringFixed(2),
			r.TotalPrice.Decimal.StringFixed(2),
			r.Date.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
