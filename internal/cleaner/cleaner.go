// Package cleaner implements the data-cleaning passes for raw sales
// transactions: missing-value repair, product name normalization, date
// standardization, duplicate elimination, quantity/price/total
// reconciliation, and final type checking.
//
// Each pass consumes a table snapshot and produces a new one; callers
// keep their input untouched. Per-record problems are resolved by
// drop-or-repair inside the pass and reported through Reject sinks and
// the pipeline Summary; they never surface as errors.
package cleaner

import "salesetl/internal/table"

// Pass is a single cleaning step over the whole table.
type Pass interface {
	Apply(in []table.Record) []table.Record
}

// Chain runs passes in order.
type Chain []Pass

func (c Chain) Apply(in []table.Record) []table.Record {
	out := in
	for _, p := range c {
		out = p.Apply(out)
	}
	return out
}

// RejectedRow describes a record a pass decided to drop. Dropping is a
// filtering decision, not a fault; sinks exist so the orchestrator can
// count and log removals per stage.
type RejectedRow struct {
	TransactionID string
	Stage         string
	Reason        string
}
