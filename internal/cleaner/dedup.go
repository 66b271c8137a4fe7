package cleaner

import (
	"github.com/zeebo/xxh3"

	"salesetl/internal/table"
)

// DeDup removes records that are content-identical on every column
// except transaction_id, keeping the first occurrence in table order.
// The surviving record's transaction_id is preserved as-is.
//
// Keys are xxh3 hashes of the canonical content key; the hash keeps the
// seen-set small on wide tables.
type DeDup struct {
	Reject func(RejectedRow)
}

func (d DeDup) Apply(in []table.Record) []table.Record {
	seen := make(map[uint64]struct{}, len(in))
	out := make([]table.Record, 0, len(in))
	for _, r := range in {
		h := xxh3.HashString(r.ContentKey())
		if _, dup := seen[h]; dup {
			if d.Reject != nil {
				d.Reject(RejectedRow{
					TransactionID: r.TransactionID,
					Stage:         "dedup",
					Reason:        "content-duplicate of an earlier record",
				})
			}
			continue
		}
		seen[h] = struct{}{}
		out = append(out, r)
	}
	return out
}
