package cleaner

import (
	"github.com/shopspring/decimal"

	"salesetl/internal/table"
)

// ReconcilerConfig holds the reconciliation thresholds. They are
// domain-tuned, not universal constants, so they are injected rather
// than hard-coded.
type ReconcilerConfig struct {
	// MaxQuantity is the largest plausible per-row quantity; above it
	// the quantity itself is the suspect value.
	MaxQuantity decimal.Decimal
	// MaxUnitPrice is the largest plausible unit price.
	MaxUnitPrice decimal.Decimal
	// Tolerance is the currency-unit slack allowed between total_price
	// and quantity*price_per_unit.
	Tolerance decimal.Decimal
}

// DefaultReconcilerConfig: quantity 100, unit price 1000, tolerance 0.01.
func DefaultReconcilerConfig() ReconcilerConfig {
	return ReconcilerConfig{
		MaxQuantity:  decimal.NewFromInt(100),
		MaxUnitPrice: decimal.NewFromInt(1000),
		Tolerance:    decimal.RequireFromString("0.01"),
	}
}

// Residual is a record whose total still disagrees with
// quantity*price_per_unit after correction and rounding. Residuals are
// kept in the table; they are a data-quality signal for the caller.
type Residual struct {
	TransactionID string
	Difference    decimal.Decimal
}

// Reconcile repairs rows where |total - quantity*price| exceeds the
// tolerance by adjusting exactly one field:
//
//  1. quantity and unit price both suspicious -> recompute quantity
//  2. only quantity suspicious               -> recompute quantity
//  3. only unit price suspicious             -> recompute unit price
//  4. neither                                -> recompute total
//
// Every row is then rounded (quantity to an integer, prices to 2dp) and
// the mismatch check re-run; leftovers go to the Residual sink. This
// pass never drops rows.
type Reconcile struct {
	Config     ReconcilerConfig
	OnResidual func(Residual)
}

func (rc Reconcile) Apply(in []table.Record) []table.Record {
	cfg := rc.Config
	if cfg.Tolerance.IsZero() && cfg.MaxQuantity.IsZero() {
		cfg = DefaultReconcilerConfig()
	}
	out := make([]table.Record, 0, len(in))
	for _, r := range in {
		q := r.Quantity.Decimal
		p := r.PricePerUnit.Decimal
		t := r.TotalPrice.Decimal

		if mismatch(q, p, t, cfg.Tolerance) {
			qBig := q.GreaterThan(cfg.MaxQuantity)
			pBig := p.GreaterThan(cfg.MaxUnitPrice)
			switch {
			case qBig && !p.IsZero():
				// Covers both the conflict case (quantity and price
				// suspicious) and quantity-only: total and price win.
				q = t.Div(p)
			case pBig && !q.IsZero():
				p = t.Div(q)
			default:
				t = q.Mul(p)
			}
		}

		// Rounding applies to the whole table, not just corrected rows.
		q = q.Round(0)
		p = p.Round(2)
		t = t.Round(2)

		if mismatch(q, p, t, cfg.Tolerance) && rc.OnResidual != nil {
			rc.OnResidual(Residual{
				TransactionID: r.TransactionID,
				Difference:    t.Sub(q.Mul(p)).Abs(),
			})
		}

		r.Quantity = table.D(q)
		r.PricePerUnit = table.D(p)
		r.TotalPrice = table.D(t)
		out = append(out, r)
	}
	return out
}

func mismatch(q, p, t, tol decimal.Decimal) bool {
	return t.Sub(q.Mul(p)).Abs().GreaterThan(tol)
}
