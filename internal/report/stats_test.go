package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanedRow(name, qty, total string) map[string]string {
	return map[string]string{
		"product_name": name,
		"quantity":     qty,
		"total_price":  total,
	}
}

func TestAggregate_Totals(t *testing.T) {
	s := Aggregate([]map[string]string{
		cleanedRow("Laptop", "1", "999.99"),
		cleanedRow("Mouse", "3", "75.00"),
		cleanedRow("Laptop", "2", "1999.98"),
	}, 10)

	assert.Equal(t, 3, s.TotalRecords)
	assert.Equal(t, "3074.97", s.TotalRevenue.StringFixed(2))
	assert.Equal(t, "1024.99", s.AvgOrderValue.StringFixed(2))
	assert.Equal(t, int64(6), s.TotalQuantity)
}

func TestAggregate_TopProducts(t *testing.T) {
	s := Aggregate([]map[string]string{
		cleanedRow("Laptop", "1", "1000"),
		cleanedRow("Mouse", "5", "125"),
		cleanedRow("Keyboard", "5", "250"),
		cleanedRow("Mouse", "2", "50"),
	}, 2)

	require.Len(t, s.TopProducts, 2)
	assert.Equal(t, ProductCount{ProductName: "Mouse", Quantity: 7}, s.TopProducts[0])
	assert.Equal(t, ProductCount{ProductName: "Keyboard", Quantity: 5}, s.TopProducts[1])
}

func TestAggregate_TiesBreakByName(t *testing.T) {
	s := Aggregate([]map[string]string{
		cleanedRow("Webcam", "2", "100"),
		cleanedRow("Charger", "2", "40"),
	}, 10)

	require.Len(t, s.TopProducts, 2)
	assert.Equal(t, "Charger", s.TopProducts[0].ProductName)
	assert.Equal(t, "Webcam", s.TopProducts[1].ProductName)
}

func TestAggregate_UnparseableCellsCountZero(t *testing.T) {
	s := Aggregate([]map[string]string{
		cleanedRow("", "x", "not-a-number"),
	}, 10)

	assert.Equal(t, 1, s.TotalRecords)
	assert.True(t, s.TotalRevenue.IsZero())
	assert.Equal(t, int64(0), s.TotalQuantity)
	require.Len(t, s.TopProducts, 1)
	assert.Equal(t, "Unknown", s.TopProducts[0].ProductName)
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil, 10)
	assert.Equal(t, 0, s.TotalRecords)
	assert.True(t, s.AvgOrderValue.IsZero())
	assert.Empty(t, s.TopProducts)
}
