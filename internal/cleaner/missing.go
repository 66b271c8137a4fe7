package cleaner

import (
	"fmt"

	"salesetl/internal/table"
)

// RepairMissing fills exactly one absent value among quantity,
// price_per_unit and total_price from the other two using
// total = quantity * price. The three repairs are independent: each is
// decided from the fields that were present on entry, so a value
// repaired in this pass never feeds another repair of the same record.
//
// Records still missing any of the three afterwards (two or more absent
// on entry, or a divisor of zero) are dropped and reported.
type RepairMissing struct {
	Reject func(RejectedRow)
}

func (m RepairMissing) Apply(in []table.Record) []table.Record {
	out := make([]table.Record, 0, len(in))
	for _, r := range in {
		qOK := r.Quantity.Valid
		pOK := r.PricePerUnit.Valid
		tOK := r.TotalPrice.Valid

		if !pOK && qOK && tOK && !r.Quantity.Decimal.IsZero() {
			r.PricePerUnit = table.D(r.TotalPrice.Decimal.Div(r.Quantity.Decimal))
		}
		if !qOK && pOK && tOK && !r.PricePerUnit.Decimal.IsZero() {
			r.Quantity = table.D(r.TotalPrice.Decimal.Div(r.PricePerUnit.Decimal))
		}
		if !tOK && qOK && pOK {
			r.TotalPrice = table.D(r.Quantity.Decimal.Mul(r.PricePerUnit.Decimal))
		}

		if !r.Quantity.Valid || !r.PricePerUnit.Valid || !r.TotalPrice.Valid {
			if m.Reject != nil {
				m.Reject(RejectedRow{
					TransactionID: r.TransactionID,
					Stage:         "missing",
					Reason:        missingReason(r),
				})
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

func missingReason(r table.Record) string {
	absent := make([]string, 0, 3)
	if !r.Quantity.Valid {
		absent = append(absent, table.ColQuantity)
	}
	if !r.PricePerUnit.Valid {
		absent = append(absent, table.ColPricePerUnit)
	}
	if !r.TotalPrice.Valid {
		absent = append(absent, table.ColTotalPrice)
	}
	return fmt.Sprintf("unrepairable: still missing %v", absent)
}
