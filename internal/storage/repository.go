// Package storage contains the storage-agnostic contracts for loading
// cleaned data into a relational store, plus a small factory registry
// so backends can be selected by configuration. Concrete backends live
// in subpackages (postgres, sqlite) and register themselves on import;
// importing storage/all pulls in every built-in backend.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"salesetl/internal/relational"
	"salesetl/internal/table"
)

// Config holds backend-independent connection settings.
type Config struct {
	// DSN is the backend connection string (pgx URL, sqlite path).
	DSN string `json:"dsn"`

	// FlatTable is the destination for the flat cleaned rows. Defaults
	// to "cleaned_sales". The four projection tables have fixed names.
	FlatTable string `json:"flat_table"`
}

// Loader persists the cleaned dataset. Bootstrap creates the schema;
// LoadFlat replaces the flat cleaned table; LoadProjection appends the
// relational view in foreign-key order (customers and products before
// transactions before items).
type Loader interface {
	Bootstrap(ctx context.Context) error
	LoadFlat(ctx context.Context, recs []table.Record) (int64, error)
	LoadProjection(ctx context.Context, pr relational.Projection) (int64, error)
	Close()
}

// Factory builds a Loader for a backend kind.
type Factory func(ctx context.Context, cfg Config) (Loader, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs a backend factory under kind. Called from backend
// package init functions.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// Open constructs the Loader for kind, or an error naming the known
// backends when kind is not registered.
func Open(ctx context.Context, kind string, cfg Config) (Loader, error) {
	mu.RLock()
	f, ok := factories[kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown backend %q (have %v)", kind, Kinds())
	}
	if cfg.FlatTable == "" {
		cfg.FlatTable = "cleaned_sales"
	}
	return f(ctx, cfg)
}

// Kinds lists the registered backend names, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
