package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesetl/internal/table"
)

func TestDeDup_KeepsFirstOccurrence(t *testing.T) {
	var rejected []RejectedRow
	pass := DeDup{Reject: func(rr RejectedRow) { rejected = append(rejected, rr) }}

	a := numRec("TX1", d("2"), d("10"), d("20"))
	b := numRec("TX2", d("2"), d("10"), d("20")) // same content, new id
	c := numRec("TX3", d("3"), d("10"), d("30"))

	out := pass.Apply([]table.Record{a, b, c})

	require.Len(t, out, 2)
	assert.Equal(t, "TX1", out[0].TransactionID)
	assert.Equal(t, "TX3", out[1].TransactionID)

	require.Len(t, rejected, 1)
	assert.Equal(t, "TX2", rejected[0].TransactionID)
	assert.Equal(t, "dedup", rejected[0].Stage)
}

func TestDeDup_IdenticalIDsStillDeDup(t *testing.T) {
	a := numRec("TX1", d("2"), d("10"), d("20"))
	out := DeDup{}.Apply([]table.Record{a, a})
	assert.Len(t, out, 1)
}

func TestDeDup_DifferentContentSurvives(t *testing.T) {
	a := numRec("TX1", d("2"), d("10"), d("20"))
	b := numRec("TX1", d("2"), d("10"), d("20"))
	b.ProductName = "Mouse"
	out := DeDup{}.Apply([]table.Record{a, b})
	assert.Len(t, out, 2)
}

func TestDeDup_EquivalentDecimalFormsCollide(t *testing.T) {
	// A repaired value ("1.5" from 3/2) must dedup against a literal
	// "1.50" read from the file.
	a := numRec("TX1", d("2"), d("1.50"), d("3.00"))
	b := numRec("TX2", d("2"), d("1.5"), d("3"))
	out := DeDup{}.Apply([]table.Record{a, b})
	assert.Len(t, out, 1)
}
