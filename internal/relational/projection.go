// Package relational derives the four-table decomposition of the flat
// cleaned table: customers, products, transactions, transaction_items.
// It is a pure view over cleaned records; nothing here corrects data.
package relational

import (
	"strings"

	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"

	"salesetl/internal/table"
)

// Customer rows carry synthesized display data; the raw feed only has
// customer ids.
type Customer struct {
	CustomerID  string
	Name        string
	Email       string
	CreatedDate civil.Date
}

// Product aggregates one product id; StandardPrice is the mean unit
// price across the product's cleaned rows, rounded to 2 decimals.
type Product struct {
	ProductID     string
	ProductName   string
	Category      string
	StandardPrice decimal.Decimal
}

// Transaction is one transaction header; TotalAmount sums total_price
// over every row sharing the transaction id.
type Transaction struct {
	TransactionID string
	CustomerID    string
	Date          civil.Date
	TotalAmount   decimal.Decimal
}

// Item is one cleaned row as a line item.
type Item struct {
	TransactionID string
	ProductID     string
	Quantity      int64
	PricePerUnit  decimal.Decimal
	TotalPrice    decimal.Decimal
}

// Projection is the full relational view. Slice order follows first
// appearance in the cleaned table, which keeps loads deterministic.
type Projection struct {
	Customers    []Customer
	Products     []Product
	Transactions []Transaction
	Items        []Item
}

// Fixed values the source feed does not carry.
var (
	customerCreated = civil.Date{Year: 2023, Month: 1, Day: 1}
	productCategory = "Electronics"
)

// Project builds the relational view from cleaned records. Records must
// have been through the full cleaning pipeline (integral quantities,
// valid dates); Project does not re-validate.
func Project(recs []table.Record) Projection {
	var pr Projection

	customerSeen := make(map[string]struct{})
	productIdx := make(map[string]int)
	productSums := make(map[string]struct {
		sum   decimal.Decimal
		count int64
	})
	txIdx := make(map[string]int)

	for _, r := range recs {
		if _, ok := customerSeen[r.CustomerID]; !ok {
			customerSeen[r.CustomerID] = struct{}{}
			pr.Customers = append(pr.Customers, Customer{
				CustomerID:  r.CustomerID,
				Name:        "Customer " + r.CustomerID,
				Email:       strings.ToLower(r.CustomerID) + "@example.com",
				CreatedDate: customerCreated,
			})
		}

		if _, ok := productIdx[r.ProductID]; !ok {
			productIdx[r.ProductID] = len(pr.Products)
			pr.Products = append(pr.Products, Product{
				ProductID:   r.ProductID,
				ProductName: r.ProductName,
				Category:    productCategory,
			})
		}
		agg := productSums[r.ProductID]
		agg.sum = agg.sum.Add(r.PricePerUnit.Decimal)
		agg.count++
		productSums[r.ProductID] = agg

		if i, ok := txIdx[r.TransactionID]; ok {
			pr.Transactions[i].TotalAmount = pr.Transactions[i].TotalAmount.Add(r.TotalPrice.Decimal)
		} else {
			txIdx[r.TransactionID] = len(pr.Transactions)
			pr.Transactions = append(pr.Transactions, Transaction{
				TransactionID: r.TransactionID,
				CustomerID:    r.CustomerID,
				Date:          r.Date,
				TotalAmount:   r.TotalPrice.Decimal,
			})
		}

		pr.Items = append(pr.Items, Item{
			TransactionID: r.TransactionID,
			ProductID:     r.ProductID,
			Quantity:      r.Quantity.Decimal.IntPart(),
			PricePerUnit:  r.PricePerUnit.Decimal,
			TotalPrice:    r.TotalPrice.Decimal,
		})
	}

	for id, agg := range productSums {
		if agg.count > 0 {
			pr.Products[productIdx[id]].StandardPrice =
				agg.sum.Div(decimal.NewFromInt(agg.count)).Round(2)
		}
	}
	return pr
}
