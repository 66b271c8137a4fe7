// Package table defines the in-memory transaction table that every
// cleaning pass consumes and produces. A Record is one row of the raw
// sales CSV; the numeric columns are nullable decimals so that missing
// values survive parsing and can be repaired (or dropped) later.
package table

import (
	"strings"

	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
)

// Column names, in the canonical CSV order.
const (
	ColTransactionID = "transaction_id"
	ColCustomerID    = "customer_id"
	ColProductID     = "product_id"
	ColProductName   = "product_name"
	ColQuantity      = "quantity"
	ColPricePerUnit  = "price_per_unit"
	ColTotalPrice    = "total_price"
	ColDate          = "transaction_date"
)

// Columns is the fixed header of both the raw input and the cleaned export.
var Columns = []string{
	ColTransactionID,
	ColCustomerID,
	ColProductID,
	ColProductName,
	ColQuantity,
	ColPricePerUnit,
	ColTotalPrice,
	ColDate,
}

// Record is one transaction row. TransactionID is opaque: it is carried
// through untouched and excluded from duplicate comparison.
//
// RawDate holds the free-text date as read from the source; Date is only
// meaningful after standardization (Date.IsValid() reports which).
type Record struct {
	TransactionID string
	CustomerID    string
	ProductID     string
	ProductName   string
	Quantity      decimal.NullDecimal
	PricePerUnit  decimal.NullDecimal
	TotalPrice    decimal.NullDecimal
	RawDate       string
	Date          civil.Date
}

// D wraps a decimal in a valid NullDecimal. Test and repair code reads
// better with it.
func D(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// None is the missing numeric value.
func None() decimal.NullDecimal { return decimal.NullDecimal{} }

// DateString renders the standardized date, or the raw text when the
// record has not been through date standardization yet.
func (r Record) DateString() string {
	if r.Date.IsValid() {
		return r.Date.String()
	}
	return r.RawDate
}

// ContentKey returns the duplicate-comparison key: every column except
// transaction_id, joined with an unlikely separator. Numeric fields are
// canonicalized so that "1.50" and "1.5" key identically regardless of
// how a value was parsed or recomputed.
func (r Record) ContentKey() string {
	var b strings.Builder
	b.WriteString(r.CustomerID)
	b.WriteByte('\x1f')
	b.WriteString(r.ProductID)
	b.WriteByte('\x1f')
	b.WriteString(r.ProductName)
	b.WriteByte('\x1f')
	b.WriteString(canonDecimal(r.Quantity))
	b.WriteByte('\x1f')
	b.WriteString(canonDecimal(r.PricePerUnit))
	b.WriteByte('\x1f')
	b.WriteString(canonDecimal(r.TotalPrice))
	b.WriteByte('\x1f')
	b.WriteString(r.DateString())
	return b.String()
}

// canonDecimal renders a nullable decimal without trailing fractional
// zeros; null renders as NUL so it can never collide with a real value.
func canonDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return "\x00"
	}
	s := d.Decimal.String()
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}

// Clone returns a deep-enough copy of the table. Record is a value type
// (decimals are immutable), so copying the slice is a full snapshot.
func Clone(in []Record) []Record {
	out := make([]Record, len(in))
	copy(out, in)
	return out
}
