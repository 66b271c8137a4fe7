// Package sqlite implements storage.Loader on SQLite via database/sql
// and the modernc driver. SQLite has no bulk-load API, so loads are
// batched INSERTs inside a single transaction, which is plenty for the
// volumes this pipeline sees. Useful as the local/dev backend.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"salesetl/internal/relational"
	"salesetl/internal/storage"
	"salesetl/internal/table"
)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Loader, error) {
		return NewRepository(ctx, cfg)
	})
}

// Repository is a SQLite-backed storage.Loader.
type Repository struct {
	db  *sql.DB
	cfg storage.Config
}

// NewRepository opens the database named by cfg.DSN, e.g. "sales.db" or
// "file:sales.db?cache=shared".
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	_, _ = db.ExecContext(ctx, "PRAGMA foreign_keys = ON;")
	return &Repository{db: db, cfg: cfg}, nil
}

// Close closes the database handle.
func (r *Repository) Close() { r.db.Close() }

// Bootstrap creates the relational schema and the flat table.
func (r *Repository) Bootstrap(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id TEXT PRIMARY KEY,
			customer_name TEXT,
			email TEXT,
			created_date TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id TEXT PRIMARY KEY,
			product_name TEXT NOT NULL,
			category TEXT,
			standard_price REAL
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			transaction_id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL REFERENCES customers(customer_id),
			transaction_date TEXT NOT NULL,
			total_amount REAL
		)`,
		`CREATE TABLE IF NOT EXISTS transaction_items (
			item_id INTEGER PRIMARY KEY AUTOINCREMENT,
			transaction_id TEXT NOT NULL REFERENCES transactions(transaction_id),
			product_id TEXT NOT NULL REFERENCES products(product_id),
			quantity INTEGER NOT NULL,
			price_per_unit REAL NOT NULL,
			total_price REAL NOT NULL
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			transaction_id TEXT,
			customer_id TEXT,
			product_id TEXT,
			product_name TEXT,
			quantity INTEGER,
			price_per_unit REAL,
			total_price REAL,
			transaction_date TEXT
		)`, r.cfg.FlatTable),
	}
	for _, stmt := range ddl {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: bootstrap: %w", err)
		}
	}
	return nil
}

// LoadFlat replaces the contents of the flat cleaned table.
func (r *Repository) LoadFlat(ctx context.Context, recs []table.Record) (int64, error) {
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
			rec.Date.String(),
		})
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM "+r.cfg.FlatTable); err != nil {
		return 0, fmt.Errorf("sqlite: clear %s: %w", r.cfg.FlatTable, err)
	}
	return r.insertAll(ctx, r.cfg.FlatTable, storage.FlatColumns, rows, false)
}

// LoadProjection appends the relational tables in FK order. Dimension
// inserts use INSERT OR IGNORE so reruns do not duplicate rows.
func (r *Repository) LoadProjection(ctx context.Context, pr relational.Projection) (int64, error) {
	var total int64

	custRows := make([][]any, 0, len(pr.Customers))
	for _, c := range pr.Customers {
		custRows = append(custRows, []any{c.CustomerID, c.Name, c.Email, c.CreatedDate.String()})
	}
	prodRows := make([][]any, 0, len(pr.Products))
	for _, p := range pr.Products {
		prodRows = append(prodRows, []any{p.ProductID, p.ProductName, p.Category, p.StandardPrice.InexactFloat64()})
	}
	txRows := make([][]any, 0, len(pr.Transactions))
	for _, t := range pr.Transactions {
		txRows = append(txRows, []any{t.TransactionID, t.CustomerID, t.Date.String(), t.TotalAmount.InexactFloat64()})
	}
	itemRows := make([][]any, 0, len(pr.Items))
	for _, it := range pr.Items {
		itemRows = append(itemRows, []any{it.TransactionID, it.ProductID, it.Quantity, it.PricePerUnit.InexactFloat64(), it.TotalPrice.InexactFloat64()})
	}

	for _, load := range []struct {
		tbl    string
		cols   []string
		rows   [][]any
		ignore bool
	}{
		{"customers", storage.CustomerColumns, custRows, true},
		{"products", storage.ProductColumns, prodRows, true},
		{"transactions", storage.TxColumns, txRows, true},
		{"transaction_items", storage.ItemColumns, itemRows, false},
	} {
		n, err := r.insertAll(ctx, load.tbl, load.cols, load.rows, load.ignore)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// insertAll runs one transaction with a prepared statement per table.
func (r *Repository) insertAll(ctx context.Context, tbl string, cols []string, rows [][]any, ignore bool) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	verb := "INSERT"
	if ignore {
		verb = "INSERT OR IGNORE"
	}
	ph := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	stmtSQL := fmt.Sprintf("%s INTO %s (%s) VALUES (%s)", verb, tbl, strings.Join(cols, ", "), ph)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("sqlite: prepare %s: %w", tbl, err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range rows {
		res, err := stmt.ExecContext(ctx, row...)
		if err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("sqlite: insert %s: %w", tbl, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += n
		}
	}
	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("sqlite: commit %s: %w", tbl, err)
	}
	return inserted, nil
}
