package storage

// Shared column orders for the projection tables and the flat export.
// Backends build their INSERT/COPY statements from these so every
// backend stays aligned on the same value order.
var (
	CustomerColumns = []string{"customer_id", "customer_name", "email", "created_date"}
	ProductColumns  = []string{"product_id", "product_name", "category", "standard_price"}
	TxColumns       = []string{"transaction_id", "customer_id", "transaction_date", "total_amount"}
	ItemColumns     = []string{"transaction_id", "product_id", "quantity", "price_per_unit", "total_price"}
	FlatColumns     = []string{
		"transaction_id", "customer_id", "product_id", "product_name",
		"quantity", "price_per_unit", "total_price", "transaction_date",
	}
)
