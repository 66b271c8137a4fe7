package cleaner

import (
	"fmt"

	"salesetl/internal/table"
)

// Finalize checks that every surviving record fits the canonical
// schema: an integral quantity, two-decimal prices, and a valid
// standardized date. Prior passes guarantee this; a violation means the
// pipeline itself is broken, so Finalize returns ErrTypeConversion
// instead of dropping the record.
func Finalize(in []table.Record) ([]table.Record, error) {
	out := make([]table.Record, 0, len(in))
	for _, r := range in {
		if !r.Quantity.Valid || !r.PricePerUnit.Valid || !r.TotalPrice.Valid {
			return nil, fmt.Errorf("%w: record %s has a missing numeric after repair", ErrTypeConversion, r.TransactionID)
		}
		q := r.Quantity.Decimal
		if !q.Equal(q.Truncate(0)) {
			return nil, fmt.Errorf("%w: record %s quantity %s is not integral", ErrTypeConversion, r.TransactionID, q)
		}
		if !r.Date.IsValid() {
			return nil, fmt.Errorf("%w: record %s date %q not standardized", ErrTypeConversion, r.TransactionID, r.RawDate)
		}
		r.Quantity = table.D(q.Truncate(0))
		r.PricePerUnit = table.D(r.PricePerUnit.Decimal.Round(2))
		r.TotalPrice = table.D(r.TotalPrice.Decimal.Round(2))
		out = append(out, r)
	}
	return out, nil
}
