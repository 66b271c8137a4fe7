package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func origRow(tx, qty, total, date string) map[string]string {
	return map[string]string{
		"transaction_id": tx, "customer_id": "CUST1", "product_id": "PROD1",
		"product_name": "laptop", "quantity": qty, "price_per_unit": "10",
		"total_price": total, "transaction_date": date,
	}
}

func TestCompare_Stats(t *testing.T) {
	original := []map[string]string{
		origRow("TX1", "2", "20", "2024-01-15"),
		origRow("TX2", "1", "10", "2024-01-16"),
		origRow("TX3", "3", "30", "2024-01-17"),
	}
	cleaned := original[:2]

	cmp := Compare(original, cleaned, 0)
	assert.Equal(t, 3, cmp.Stats.OriginalCount)
	assert.Equal(t, 2, cmp.Stats.CleanedCount)
	assert.Equal(t, 1, cmp.Stats.RowsRemoved)
	assert.InDelta(t, 33.3, cmp.Stats.CleaningPercentage, 0.001)
}

func TestCompare_DiffColumns(t *testing.T) {
	orig := origRow("TX1", "2", "20", "15/01/2024")
	clean := origRow("TX1", "2", "20.00", "2024-01-15")
	clean["product_name"] = "Laptop"

	cmp := Compare([]map[string]string{orig}, []map[string]string{clean}, 0)
	require.Len(t, cmp.Rows, 1)

	// Numeric columns compare by value, so "20" vs "20.00" is no diff;
	// the reformatted date and renamed product are.
	assert.ElementsMatch(t, []string{"product_name", "transaction_date"}, cmp.Rows[0].Diffs)
	assert.False(t, cmp.Rows[0].Dropped)
}

func TestCompare_DroppedAndLimit(t *testing.T) {
	original := []map[string]string{
		origRow("TX1", "2", "20", "2024-01-15"),
		origRow("TX2", "1", "10", "2024-01-16"),
	}
	cleaned := original[:1]

	cmp := Compare(original, cleaned, 0)
	require.Len(t, cmp.Rows, 2)
	assert.False(t, cmp.Rows[0].Dropped)
	assert.True(t, cmp.Rows[1].Dropped)
	assert.Nil(t, cmp.Rows[1].Cleaned)

	limited := Compare(original, cleaned, 1)
	assert.Len(t, limited.Rows, 1)
	// Stats still cover the whole files.
	assert.Equal(t, 2, limited.Stats.OriginalCount)
}

func TestCompare_Empty(t *testing.T) {
	cmp := Compare(nil, nil, 0)
	assert.Equal(t, 0.0, cmp.Stats.CleaningPercentage)
	assert.Empty(t, cmp.Rows)
}

func TestReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "transaction_id,quantity\nTX1,2\nTX2,3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := ReadCSVFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "TX1", rows[0]["transaction_id"])
	assert.Equal(t, "3", rows[1]["quantity"])
}

func TestReadCSVFile_MissingIsNoData(t *testing.T) {
	rows, err := ReadCSVFile(filepath.Join(t.TempDir(), "absent.csv"))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestReadCSVFile_BOMHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.csv")
	require.NoError(t, os.WriteFile(path, []byte("\uFEFFtransaction_id\nTX1\n"), 0o644))

	rows, err := ReadCSVFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "TX1", rows[0]["transaction_id"])
}
