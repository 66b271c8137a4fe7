package report

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"salesetl/internal/table"
)

// ProductCount is one entry of the top-products list.
type ProductCount struct {
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

// Stats aggregates the cleaned dataset for display.
type Stats struct {
	TotalRecords  int             `json:"total_records"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
	TotalQuantity int64           `json:"total_quantity"`
	TopProducts   []ProductCount  `json:"top_products"`
}

// Aggregate computes display statistics over cleaned CSV rows. Cells
// that fail to parse count as zero; the cleaned file should not contain
// any, but the view must not fail on one. topN bounds the product list.
func Aggregate(cleaned []map[string]string, topN int) Stats {
	s := Stats{TotalRecords: len(cleaned)}
	byProduct := make(map[string]int64)

	for _, row := range cleaned {
		if d, err := decimal.NewFromString(row[table.ColTotalPrice]); err == nil {
			s.TotalRevenue = s.TotalRevenue.Add(d)
		}
		qty, _ := strconv.ParseInt(row[table.ColQuantity], 10, 64)
		s.TotalQuantity += qty
		name := row[table.ColProductName]
		if name == "" {
			name = "Unknown"
		}
		byProduct[name] += qty
	}

	if s.TotalRecords > 0 {
		s.AvgOrderValue = s.TotalRevenue.Div(decimal.NewFromInt(int64(s.TotalRecords))).Round(2)
	}

	s.TopProducts = make([]ProductCount, 0, len(byProduct))
	for name, qty := range byProduct {
		s.TopProducts = append(s.TopProducts, ProductCount{ProductName: name, Quantity: qty})
	}
	sort.Slice(s.TopProducts, func(i, j int) bool {
		if s.TopProducts[i].Quantity != s.TopProducts[j].Quantity {
			return s.TopProducts[i].Quantity > s.TopProducts[j].Quantity
		}
		return s.TopProducts[i].ProductName < s.TopProducts[j].ProductName
	})
	if topN > 0 && len(s.TopProducts) > topN {
		s.TopProducts = s.TopProducts[:topN]
	}
	return s
}
