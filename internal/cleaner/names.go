package cleaner

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"salesetl/internal/table"
)

// Rule maps a product-name pattern to a canonical name. Patterns are
// tested as case-insensitive substring searches over the trimmed,
// lower-cased input.
type Rule struct {
	Pattern   *regexp.Regexp
	Canonical string
}

// DefaultRules returns the canonical product vocabulary. Order matters:
// the first matching rule wins, so "usb c mouse pad" resolves to
// "USB-C Cable", not "Mouse". Do not reorder.
func DefaultRules() []Rule {
	return []Rule{
		{regexp.MustCompile(`(?i)usb[-\s]?c`), "USB-C Cable"},
		{regexp.MustCompile(`(?i)usbc`), "USB-C Cable"},
		{regexp.MustCompile(`(?i)webcam`), "Webcam"},
		{regexp.MustCompile(`(?i)mouse`), "Mouse"},
		{regexp.MustCompile(`(?i)keyboard`), "Keyboard"},
		{regexp.MustCompile(`(?i)laptop`), "Laptop"},
		{regexp.MustCompile(`(?i)monitor`), "Monitor"},
		{regexp.MustCompile(`(?i)tablet`), "Tablet"},
		{regexp.MustCompile(`(?i)printer`), "Printer"},
		{regexp.MustCompile(`(?i)headphones`), "Headphones"},
		{regexp.MustCompile(`(?i)charger`), "Charger"},
		{regexp.MustCompile(`(?i)smartphone`), "Smartphone"},
	}
}

// NormalizeNames maps free-text product names onto the canonical
// vocabulary. Names no rule matches fall back to a title-cased form of
// the trimmed original.
type NormalizeNames struct {
	Rules []Rule

	titler cases.Caser
}

// NewNormalizeNames builds the pass with the given ordered rules; nil
// means DefaultRules.
func NewNormalizeNames(rules []Rule) NormalizeNames {
	if rules == nil {
		rules = DefaultRules()
	}
	return NormalizeNames{
		Rules:  rules,
		titler: cases.Title(language.English),
	}
}

func (n NormalizeNames) Apply(in []table.Record) []table.Record {
	out := make([]table.Record, 0, len(in))
	for _, r := range in {
		r.ProductName = n.normalize(r.ProductName)
		out = append(out, r)
	}
	return out
}

// normalize is exercised rule-by-rule in tests; keep it linear-scan,
// first match wins.
func (n NormalizeNames) normalize(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for _, rule := range n.Rules {
		if rule.Pattern.MatchString(lowered) {
			return rule.Canonical
		}
	}
	return n.titler.String(lowered)
}
