// Package config provides configuration models and helpers for cleaning runs.
//
// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"salesetl/internal/storage"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "cleaning.products[1].pattern"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// ValidatePipeline performs static validation / linting of a Pipeline.
//
// It does not mutate the pipeline. Instead it returns a slice of Issue values.
// Callers may decide whether to treat warnings as fatal or not.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}

	issues = append(issues, validateInput(p.Input)...)
	issues = append(issues, validateOutput(p.Output)...)
	issues = append(issues, validateCleaning(p.Cleaning)...)
	issues = append(issues, validateStorage(p.Storage)...)
	issues = append(issues, validateReport(p.Report)...)

	return issues
}

func validateInput(in Input) []Issue {
	var issues []Issue

	if strings.TrimSpace(in.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input.path",
			Message:  "input.path must not be empty",
		})
	}
	if in.Comma != "" && len([]rune(in.Comma)) != 1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input.comma",
			Message:  fmt.Sprintf("delimiter must be a single character, got %q", in.Comma),
		})
	}

	return issues
}

func validateOutput(out Output) []Issue {
	var issues []Issue

	if strings.TrimSpace(out.CleanedPath) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "output.cleaned_path",
			Message:  "no cleaned_path set; cleaned rows will not be written to CSV",
		})
	}

	return issues
}

func validateCleaning(c Cleaning) []Issue {
	var issues []Issue

	for i, pr := range c.Products {
		path := fmt.Sprintf("cleaning.products[%d]", i)
		if strings.TrimSpace(pr.Pattern) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".pattern",
				Message:  "pattern must not be empty",
			})
		} else if _, err := regexp.Compile("(?i)" + pr.Pattern); err != nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".pattern",
				Message:  fmt.Sprintf("invalid regular expression: %v", err),
			})
		}
		if strings.TrimSpace(pr.Canonical) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".canonical",
				Message:  "canonical name must not be empty",
			})
		}
	}

	if c.Dates.MinYear != 0 && c.Dates.MaxYear != 0 && c.Dates.MinYear > c.Dates.MaxYear {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "cleaning.dates",
			Message:  fmt.Sprintf("min_year %d exceeds max_year %d", c.Dates.MinYear, c.Dates.MaxYear),
		})
	}

	if c.Reconciler.MaxQuantity < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "cleaning.reconciler.max_quantity",
			Message:  "max_quantity must not be negative",
		})
	}
	if c.Reconciler.MaxUnitPrice < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "cleaning.reconciler.max_unit_price",
			Message:  "max_unit_price must not be negative",
		})
	}
	if c.Reconciler.Tolerance != "" {
		tol, err := decimal.NewFromString(c.Reconciler.Tolerance)
		switch {
		case err != nil:
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "cleaning.reconciler.tolerance",
				Message:  fmt.Sprintf("invalid decimal: %v", err),
			})
		case tol.IsNegative():
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "cleaning.reconciler.tolerance",
				Message:  "tolerance must not be negative",
			})
		}
	}

	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	if s.Kind == "" {
		return issues
	}

	// Unknown kinds are warnings: the backend registry is populated by
	// imports, so a kind unknown here may still be registered at runtime.
	known := map[string]struct{}{}
	for _, k := range storage.Kinds() {
		known[k] = struct{}{}
	}
	if _, ok := known[s.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is imported", s.Kind),
		})
	}

	if s.Kind == "sqlite" && strings.TrimSpace(s.DB.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.dsn",
			Message:  "sqlite requires an explicit dsn (file path)",
		})
	}
	if s.Kind == "postgres" && strings.TrimSpace(s.DB.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.db.dsn",
			Message:  "no dsn set; connection will be built from DB_* environment variables",
		})
	}

	return issues
}

func validateReport(r Report) []Issue {
	var issues []Issue

	if r.RowLimit < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "report.row_limit",
			Message:  "row_limit must not be negative",
		})
	}
	if r.TopN < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "report.top_n",
			Message:  "top_n must not be negative",
		})
	}

	return issues
}
