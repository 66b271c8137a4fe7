package cleaner

import (
	"testing"

	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesetl/internal/table"
)

func dateRec(id, raw string) table.Record {
	return table.Record{TransactionID: id, RawDate: raw}
}

func TestStandardizeDates_AcceptedLayouts(t *testing.T) {
	tests := []struct {
		raw  string
		want civil.Date
	}{
		{"2024-03-09", civil.Date{Year: 2024, Month: 3, Day: 9}},
		{"2024/03/09", civil.Date{Year: 2024, Month: 3, Day: 9}},
		{"09/03/2024", civil.Date{Year: 2024, Month: 3, Day: 9}},  // day first
		{"March 9, 2024", civil.Date{Year: 2024, Month: 3, Day: 9}},
		{"09-03-24", civil.Date{Year: 2024, Month: 3, Day: 9}},
		{"  2024-03-09  ", civil.Date{Year: 2024, Month: 3, Day: 9}},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			out := StandardizeDates{}.Apply([]table.Record{dateRec("TX1", tc.raw)})
			require.Len(t, out, 1)
			assert.Equal(t, tc.want, out[0].Date)
		})
	}
}

func TestStandardizeDates_AmbiguousNumericIsDayFirst(t *testing.T) {
	// 04/03/2024 parses under both slash layouts; the day-first layout
	// comes first, so this is March 4th, not April 3rd.
	out := StandardizeDates{}.Apply([]table.Record{dateRec("TX1", "04/03/2024")})
	require.Len(t, out, 1)
	assert.Equal(t, civil.Date{Year: 2024, Month: 3, Day: 4}, out[0].Date)
}

func TestStandardizeDates_MonthFirstFallback(t *testing.T) {
	// 03/25/2024 cannot be day-first (no month 25), so the US layout
	// picks it up.
	out := StandardizeDates{}.Apply([]table.Record{dateRec("TX1", "03/25/2024")})
	require.Len(t, out, 1)
	assert.Equal(t, civil.Date{Year: 2024, Month: 3, Day: 25}, out[0].Date)
}

func TestStandardizeDates_DropsUnparseable(t *testing.T) {
	var rejected []RejectedRow
	pass := StandardizeDates{Reject: func(rr RejectedRow) { rejected = append(rejected, rr) }}

	in := []table.Record{
		dateRec("TX1", "Invalid Date"),
		dateRec("TX2", ""),
		dateRec("TX3", "not a date"),
		dateRec("TX4", "2024-01-15"),
	}
	out := pass.Apply(in)

	require.Len(t, out, 1)
	assert.Equal(t, "TX4", out[0].TransactionID)
	require.Len(t, rejected, 3)
	assert.Equal(t, "dates", rejected[0].Stage)
	assert.Contains(t, rejected[2].Reason, "not a date")
}

func TestStandardizeDates_YearRange(t *testing.T) {
	var rejected []RejectedRow
	pass := StandardizeDates{Reject: func(rr RejectedRow) { rejected = append(rejected, rr) }}

	in := []table.Record{
		dateRec("TX1", "1899-12-31"),
		dateRec("TX2", "2031-01-01"),
		dateRec("TX3", "1900-01-01"),
		dateRec("TX4", "2030-12-31"),
	}
	out := pass.Apply(in)

	require.Len(t, out, 2)
	assert.Equal(t, "TX3", out[0].TransactionID)
	assert.Equal(t, "TX4", out[1].TransactionID)
	assert.Len(t, rejected, 2)
}

func TestStandardizeDates_OutOfRangeParseKeepsScanning(t *testing.T) {
	// "09-03-24" parses under the ISO layout as year 9, which is out of
	// range. The scan must continue to the two-digit layout (2024-03-09)
	// instead of stopping at the first layout that technically parses.
	out := StandardizeDates{}.Apply([]table.Record{dateRec("TX1", "09-03-24")})
	require.Len(t, out, 1)
	assert.Equal(t, civil.Date{Year: 2024, Month: 3, Day: 9}, out[0].Date)
}

func TestStandardizeDates_CustomConfig(t *testing.T) {
	cfg := DateConfig{Layouts: []string{"02.01.2006"}, MinYear: 2000, MaxYear: 2010}
	pass := StandardizeDates{Config: cfg}

	out := pass.Apply([]table.Record{
		dateRec("TX1", "15.06.2005"),
		dateRec("TX2", "2005-06-15"), // not in the custom layout set
	})
	require.Len(t, out, 1)
	assert.Equal(t, civil.Date{Year: 2005, Month: 6, Day: 15}, out[0].Date)
}
