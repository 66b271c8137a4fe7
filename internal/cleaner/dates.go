package cleaner

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-sql/civil"

	"salesetl/internal/table"
)

// invalidDateSentinel is the literal some upstream exports write in
// place of a date they could not render.
const invalidDateSentinel = "Invalid Date"

// DefaultDateLayouts lists the accepted input formats in priority
// order. Ambiguous numeric dates resolve to the earliest layout that
// parses, so DD/MM/YYYY beats MM/DD/YYYY; preserve the order.
var DefaultDateLayouts = []string{
	"2006-01-02",      // 2025-03-09
	"2006/01/02",      // 2025/03/09
	"02/01/2006",      // 09/03/2025
	"01/02/2006",      // 03/09/2025
	"January 2, 2006", // March 09, 2025
	"02-01-06",        // 09-03-25
	"01/02/06",        // 03/09/25
}

// DateConfig bounds the accepted calendar years. Years outside the
// range mean a mis-parsed or corrupt value, not an old transaction.
type DateConfig struct {
	Layouts []string
	MinYear int
	MaxYear int
}

// DefaultDateConfig accepts years 1900-2030.
func DefaultDateConfig() DateConfig {
	return DateConfig{Layouts: DefaultDateLayouts, MinYear: 1900, MaxYear: 2030}
}

// StandardizeDates parses the free-text transaction_date into a
// calendar date. A parse only counts when the resulting year is in
// range; an earlier layout that parses to an out-of-range year does not
// stop the scan. Records no layout accepts are dropped and reported.
type StandardizeDates struct {
	Config DateConfig
	Reject func(RejectedRow)
}

func (s StandardizeDates) Apply(in []table.Record) []table.Record {
	cfg := s.Config
	if len(cfg.Layouts) == 0 {
		cfg = DefaultDateConfig()
	}
	out := make([]table.Record, 0, len(in))
	for _, r := range in {
		d, ok := parseDate(r.RawDate, cfg)
		if !ok {
			if s.Reject != nil {
				s.Reject(RejectedRow{
					TransactionID: r.TransactionID,
					Stage:         "dates",
					Reason:        fmt.Sprintf("unparseable date %q", r.RawDate),
				})
			}
			continue
		}
		r.Date = d
		out = append(out, r)
	}
	return out
}

func parseDate(raw string, cfg DateConfig) (civil.Date, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == invalidDateSentinel {
		return civil.Date{}, false
	}
	for _, layout := range cfg.Layouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if t.Year() < cfg.MinYear || t.Year() > cfg.MaxYear {
			// Parsed, but implausible; keep trying later layouts.
			continue
		}
		return civil.DateOf(t), true
	}
	return civil.Date{}, false
}
