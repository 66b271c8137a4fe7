// Package config defines the JSON-serializable configuration model for
// a cleaning run. It is intentionally small and explicit: field names
// in Go mirror the JSON structure of run files, decoding is plain
// encoding/json, and defaults are applied by the accessors rather than
// by mutation so a decoded Pipeline can be inspected as written.
//
// Example (trimmed):
//
//	{
//	  "job":     "sales",
//	  "input":   { "path": "sales_transactions.csv" },
//	  "output":  { "cleaned_path": "cleaned_sales_transactions.csv" },
//	  "cleaning":{ "reconciler": { "max_quantity": 100, "max_unit_price": 1000, "tolerance": "0.01" } },
//	  "storage": { "kind": "postgres", "db": { "dsn": "postgresql://..." } }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/shopspring/decimal"

	"salesetl/internal/cleaner"
)

// Pipeline is the top-level run configuration.
type Pipeline struct {
	// Job names the run for logs and metrics labeling.
	Job string `json:"job"`

	Input    Input    `json:"input"`
	Output   Output   `json:"output"`
	Cleaning Cleaning `json:"cleaning"`
	Storage  Storage  `json:"storage"`
	Report   Report   `json:"report"`
}

// Input describes the raw CSV source.
type Input struct {
	// Path is the local filesystem path to the raw transactions CSV.
	Path string `json:"path"`

	// Comma is the field delimiter; "," when empty.
	Comma string `json:"comma"`
}

// Output describes the cleaned CSV destination.
type Output struct {
	CleanedPath string `json:"cleaned_path"`
}

// ProductRule is one ordered normalization rule. Pattern is a regular
// expression matched case-insensitively anywhere in the lower-cased
// product name.
type ProductRule struct {
	Pattern   string `json:"pattern"`
	Canonical string `json:"canonical"`
}

// Dates bounds date standardization. Zero values fall back to the
// built-in layouts and the 1900-2030 year range.
type Dates struct {
	Layouts []string `json:"layouts"`
	MinYear int      `json:"min_year"`
	MaxYear int      `json:"max_year"`
}

// Reconciler carries the mismatch thresholds. Tolerance is a decimal
// string ("0.01") so currency amounts never pass through floats.
type Reconciler struct {
	MaxQuantity  int64  `json:"max_quantity"`
	MaxUnitPrice int64  `json:"max_unit_price"`
	Tolerance    string `json:"tolerance"`
}

// Cleaning groups the pass tunables. Empty slices mean the built-in
// defaults (canonical product vocabulary, standard date layouts).
type Cleaning struct {
	Products   []ProductRule `json:"products"`
	Dates      Dates         `json:"dates"`
	Reconciler Reconciler    `json:"reconciler"`
}

// DBConfig configures the relational sink connection.
type DBConfig struct {
	// DSN is the backend connection string. When empty, the postgres
	// backend builds one from the DB_* environment variables.
	DSN string `json:"dsn"`

	// FlatTable overrides the flat cleaned table name.
	FlatTable string `json:"flat_table"`
}

// Storage selects the relational sink. Kind "" disables the load.
type Storage struct {
	// Kind selects the backend: "postgres", "sqlite", or "" for none.
	Kind string `json:"kind"`

	DB DBConfig `json:"db"`
}

// Report configures the dashboard server.
type Report struct {
	// Addr is the listen address; ":5000" when empty.
	Addr string `json:"addr"`

	// RowLimit bounds comparison rows rendered; 108 when zero.
	RowLimit int `json:"row_limit"`

	// TopN bounds the product list on the stats page; 10 when zero.
	TopN int `json:"top_n"`
}

// Load decodes a Pipeline from a JSON file.
func Load(path string) (Pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return Pipeline{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode decodes a Pipeline from r. Unknown fields are rejected so
// typos in run files surface instead of silently doing nothing.
func Decode(r io.Reader) (Pipeline, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var p Pipeline
	if err := dec.Decode(&p); err != nil {
		return Pipeline{}, fmt.Errorf("decode config: %w", err)
	}
	return p, nil
}

// CleanerConfig translates the cleaning section into pass
// configuration, compiling product patterns. Defaults fill anything
// left unset.
func (c Cleaning) CleanerConfig() (cleaner.Config, error) {
	cfg := cleaner.DefaultConfig()

	if len(c.Products) > 0 {
		rules := make([]cleaner.Rule, 0, len(c.Products))
		for i, pr := range c.Products {
			re, err := regexp.Compile("(?i)" + pr.Pattern)
			if err != nil {
				return cleaner.Config{}, fmt.Errorf("cleaning.products[%d]: %w", i, err)
			}
			rules = append(rules, cleaner.Rule{Pattern: re, Canonical: pr.Canonical})
		}
		cfg.Rules = rules
	}

	if len(c.Dates.Layouts) > 0 {
		cfg.Dates.Layouts = c.Dates.Layouts
	}
	if c.Dates.MinYear != 0 {
		cfg.Dates.MinYear = c.Dates.MinYear
	}
	if c.Dates.MaxYear != 0 {
		cfg.Dates.MaxYear = c.Dates.MaxYear
	}

	if c.Reconciler.MaxQuantity != 0 {
		cfg.Reconciler.MaxQuantity = decimal.NewFromInt(c.Reconciler.MaxQuantity)
	}
	if c.Reconciler.MaxUnitPrice != 0 {
		cfg.Reconciler.MaxUnitPrice = decimal.NewFromInt(c.Reconciler.MaxUnitPrice)
	}
	if c.Reconciler.Tolerance != "" {
		tol, err := decimal.NewFromString(c.Reconciler.Tolerance)
		if err != nil {
			return cleaner.Config{}, fmt.Errorf("cleaning.reconciler.tolerance: %w", err)
		}
		cfg.Reconciler.Tolerance = tol
	}
	return cfg, nil
}

// ResolveDSN returns the configured DSN, or one assembled from the
// DB_* environment variables with development defaults, mirroring how
// operators have historically pointed this pipeline at postgres.
func (d DBConfig) ResolveDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	user := envOr("DB_USERNAME", "postgres")
	pass := envOr("DB_PASSWORD", "")
	host := envOr("DB_HOST", "localhost")
	port := envOr("DB_PORT", "5432")
	name := envOr("DB_NAME", "eshop_db")
	if pass != "" {
		return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s", user, pass, host, port, name)
	}
	return fmt.Sprintf("postgresql://%s@%s:%s/%s", user, host, port, name)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
