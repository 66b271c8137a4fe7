package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesetl/internal/cleaner"
)

const sampleHeader = "transaction_id,customer_id,product_id,product_name,quantity,price_per_unit,total_price,transaction_date\n"

func TestParse_BasicRow(t *testing.T) {
	input := sampleHeader +
		"TX1,CUST1,PROD1,Laptop,2,999.99,1999.98,2024-01-15\n"
	recs, err := NewParser(Options{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, "TX1", r.TransactionID)
	assert.Equal(t, "CUST1", r.CustomerID)
	assert.Equal(t, "PROD1", r.ProductID)
	assert.Equal(t, "Laptop", r.ProductName)
	require.True(t, r.Quantity.Valid)
	assert.Equal(t, "2", r.Quantity.Decimal.String())
	assert.Equal(t, "999.99", r.PricePerUnit.Decimal.String())
	assert.Equal(t, "1999.98", r.TotalPrice.Decimal.String())
	assert.Equal(t, "2024-01-15", r.RawDate)
	assert.False(t, r.Date.IsValid())
}

func TestParse_MissingAndMalformedNumerics(t *testing.T) {
	input := sampleHeader +
		"TX1,CUST1,PROD1,Laptop,,999.99,1999.98,2024-01-15\n" +
		"TX2,CUST2,PROD2,Mouse,two,25,50,2024-01-16\n"
	recs, err := NewParser(Options{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.False(t, recs[0].Quantity.Valid)
	assert.True(t, recs[0].PricePerUnit.Valid)
	assert.False(t, recs[1].Quantity.Valid, "non-numeric cell becomes missing")
}

func TestParse_HeaderValidation(t *testing.T) {
	_, err := NewParser(Options{}).Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")

	_, err = NewParser(Options{}).Parse(strings.NewReader("transaction_id,customer_id\nTX1,CUST1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product_id")
}

func TestParse_HeaderBOMAndReorderedColumns(t *testing.T) {
	input := "\uFEFFtransaction_date,transaction_id,customer_id,product_id,product_name,quantity,price_per_unit,total_price\n" +
		"2024-01-15,TX1,CUST1,PROD1,Laptop,2,10,20\n"
	recs, err := NewParser(Options{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "TX1", recs[0].TransactionID)
	assert.Equal(t, "2024-01-15", recs[0].RawDate)
}

func TestParse_TrimSpace(t *testing.T) {
	input := sampleHeader +
		"TX1,CUST1,PROD1,  Laptop Pro  ,2, 10 ,20,2024-01-15\n"
	recs, err := NewParser(Options{TrimSpace: true}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro", recs[0].ProductName)
	require.True(t, recs[0].PricePerUnit.Valid)
}

func TestParse_ShortRow(t *testing.T) {
	input := sampleHeader + "TX1,CUST1,PROD1,Laptop\n"
	recs, err := NewParser(Options{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.False(t, recs[0].Quantity.Valid)
	assert.Equal(t, "", recs[0].RawDate)
}

func TestParse_CustomDelimiter(t *testing.T) {
	input := strings.ReplaceAll(sampleHeader, ",", ";") +
		"TX1;CUST1;PROD1;Laptop;2;10;20;2024-01-15\n"
	recs, err := NewParser(Options{Comma: ';'}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Laptop", recs[0].ProductName)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := NewParser(Options{}).ParseFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, cleaner.ErrMissingInput)
}

func TestParseFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	content := sampleHeader + "TX1,CUST1,PROD1,Laptop,2,10,20,2024-01-15\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	recs, err := NewParser(Options{}).ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
