// Package postgres implements storage.Loader on PostgreSQL using pgx
// v5. The flat cleaned table is replaced wholesale and bulk-loaded with
// COPY; the relational projection is appended with ON CONFLICT DO
// NOTHING so repeated runs do not duplicate dimension rows.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salesetl/internal/relational"
	"salesetl/internal/storage"
	"salesetl/internal/table"
)

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Loader, error) {
		return NewRepository(ctx, cfg)
	})
}

// Repository is a Postgres-backed storage.Loader.
type Repository struct {
	pool *pgxpool.Pool
	cfg  storage.Config
}

// NewRepository connects a pgx pool. The pool is lazy; a bad DSN still
// fails fast via Ping.
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Repository{pool: pool, cfg: cfg}, nil
}

// Close releases the pool.
func (r *Repository) Close() { r.pool.Close() }

// Bootstrap creates the relational schema and the flat table.
func (r *Repository) Bootstrap(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id VARCHAR(50) PRIMARY KEY,
			customer_name VARCHAR(100),
			email VARCHAR(100),
			created_date DATE
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id VARCHAR(50) PRIMARY KEY,
			product_name VARCHAR(100) NOT NULL,
			category VARCHAR(50),
			standard_price DECIMAL(10, 2)
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			transaction_id VARCHAR(50) PRIMARY KEY,
			customer_id VARCHAR(50) NOT NULL REFERENCES customers(customer_id),
			transaction_date DATE NOT NULL,
			total_amount DECIMAL(10, 2)
		)`,
		`CREATE TABLE IF NOT EXISTS transaction_items (
			item_id SERIAL PRIMARY KEY,
			transaction_id VARCHAR(50) NOT NULL REFERENCES transactions(transaction_id),
			product_id VARCHAR(50) NOT NULL REFERENCES products(product_id),
			quantity INTEGER NOT NULL,
			price_per_unit DECIMAL(10, 2) NOT NULL,
			total_price DECIMAL(10, 2) NOT NULL
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			transaction_id VARCHAR(50),
			customer_id VARCHAR(50),
			product_id VARCHAR(50),
			product_name VARCHAR(100),
			quantity INTEGER,
			price_per_unit DECIMAL(10, 2),
			total_price DECIMAL(10, 2),
			transaction_date DATE
		)`, r.cfg.FlatTable),
	}
	for _, stmt := range ddl {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: bootstrap: %w", err)
		}
	}
	return nil
}

// LoadFlat truncates and re-fills the flat cleaned table via COPY.
func (r *Repository) LoadFlat(ctx context.Context, recs []table.Record) (int64, error) {
	if _, err := r.pool.Exec(ctx, "TRUNCATE "+r.cfg.FlatTable); err != nil {
		return 0, fmt.Errorf("postgres: truncate %s: %w", r.cfg.FlatTable, err)
	}
	rows := make([][]any, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []any{
			rec.TransactionID,
			rec.CustomerID,
			rec.ProductID,
			rec.ProductName,
			rec.Quantity.Decimal.IntPart(),
			rec.PricePerUnit.Decimal.InexactFloat64(),
			rec.TotalPrice.Decimal.InexactFloat64(),
			rec.Date.In(time.UTC),
		})
	}
	n, err := r.pool.CopyFrom(ctx, pgx.Identifier{r.cfg.FlatTable}, storage.FlatColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return n, fmt.Errorf("postgres: copy %s: %w", r.cfg.FlatTable, err)
	}
	return n, nil
}

// LoadProjection appends the four relational tables in FK order.
func (r *Repository) LoadProjection(ctx context.Context, pr relational.Projection) (int64, error) {
	var total int64

	batch := &pgx.Batch{}
	for _, c := range pr.Customers {
		batch.Queue(
			insertIgnore("customers", storage.CustomerColumns),
			c.CustomerID, c.Name, c.Email, c.CreatedDate.In(time.UTC),
		)
	}
	for _, p := range pr.Products {
		batch.Queue(
			insertIgnore("products", storage.ProductColumns),
			p.ProductID, p.ProductName, p.Category, p.StandardPrice.InexactFloat64(),
		)
	}
	for _, t := range pr.Transactions {
		batch.Queue(
			insertIgnore("transactions", storage.TxColumns),
			t.TransactionID, t.CustomerID, t.Date.In(time.UTC), t.TotalAmount.InexactFloat64(),
		)
	}
	res := r.pool.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		tag, err := res.Exec()
		if err != nil {
			res.Close()
			return total, fmt.Errorf("postgres: projection insert: %w", err)
		}
		total += tag.RowsAffected()
	}
	if err := res.Close(); err != nil {
		return total, fmt.Errorf("postgres: projection batch: %w", err)
	}

	rows := make([][]any, 0, len(pr.Items))
	for _, it := range pr.Items {
		rows = append(rows, []any{
			it.TransactionID,
			it.ProductID,
			it.Quantity,
			it.PricePerUnit.InexactFloat64(),
			it.TotalPrice.InexactFloat64(),
		})
	}
	n, err := r.pool.CopyFrom(ctx, pgx.Identifier{"transaction_items"}, storage.ItemColumns, pgx.CopyFromRows(rows))
	total += n
	if err != nil {
		return total, fmt.Errorf("postgres: copy transaction_items: %w", err)
	}
	return total, nil
}

func insertIgnore(tbl string, cols []string) string {
	ph := make([]string, len(cols))
	for i := range cols {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING",
		tbl, strings.Join(cols, ", "), strings.Join(ph, ", "),
	)
}
