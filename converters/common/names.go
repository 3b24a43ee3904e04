package common

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const (
	TBPRE = "tb"
	CLPRE = "cl"

	// PrimaryKey is the synthetic key column every generated table starts with.
	PrimaryKey = "id"
)

var (
	symbols    = regexp.MustCompile(`[^\p{L}\p{N}_\p{Z}\s\-.]+`)
	separators = regexp.MustCompile(`[\p{Z}\s\-.]+`)
	nonWord    = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
)

// Normalize turns arbitrary text into a lowercase snake_case identifier.
// Symbols are dropped first, then each run of whitespace, hyphens and periods
// becomes one underscore, so "Price / Unit" gives "price_unit". Normalize is
// idempotent and returns "" when nothing usable is left.
func Normalize(raw string) string {
	name := strings.TrimSpace(raw)
	name = norm.NFC.String(name)
	name = cases.Lower(language.Und).String(name)
	name = symbols.ReplaceAllString(name, "")
	name = separators.ReplaceAllString(name, "_")
	name = nonWord.ReplaceAllString(name, "")
	// stripping marks can leave composable neighbours behind
	return norm.NFC.String(name)
}

// NameRegistry tracks identifiers already used in one table and hands out
// deterministic numeric suffixes on collision.
type NameRegistry struct {
	counts map[string]int
}

// NewNameRegistry returns an empty registry.
func NewNameRegistry() *NameRegistry {
	return &NameRegistry{counts: map[string]int{}}
}

// Claim registers name and returns it, or name_N with the smallest free N >= 2
// if name was claimed before.
func (r *NameRegistry) Claim(name string) string {
	r.counts[name]++
	if r.counts[name] == 1 {
		return name
	}
	for n := r.counts[name]; ; n++ {
		candidate := fmt.Sprintf("%s_%d", name, n)
		if r.counts[candidate] == 0 {
			r.counts[candidate] = 1
			r.counts[name] = n
			return candidate
		}
	}
}

// Count reports how many times name has been claimed.
func (r *NameRegistry) Count(name string) int {
	return r.counts[name]
}

// GenColumns builds the columns of a table from its raw header row.
// The primary key name is reserved up front, so a user column called "id" is
// renamed instead of colliding with it. Headers that normalize to nothing get
// a positional name (cl0, cl1, ...). Every rename is reported as a warning.
func GenColumns(rawheaders []string) ([]Column, []string) {
	registry := NewNameRegistry()
	registry.Claim(PrimaryKey)

	columns := make([]Column, len(rawheaders))
	var warnings []string
	for idx, raw := range rawheaders {
		name := Normalize(raw)
		if name == "" {
			name = fmt.Sprintf("%s%d", CLPRE, idx)
			warnings = append(warnings, fmt.Sprintf("column %d (%q) has no usable characters, named %q", idx+1, raw, name))
		}

		unique := registry.Claim(name)
		switch {
		case unique == name:
		case name == PrimaryKey:
			warnings = append(warnings, fmt.Sprintf("column %q renamed to %q: %q is reserved for the primary key", raw, unique, PrimaryKey))
		default:
			warnings = append(warnings, fmt.Sprintf("column %q renamed to %q: %q is already in use", raw, unique, name))
		}

		columns[idx] = Column{Original: raw, Name: unique}
	}
	return columns, warnings
}

// GenColumnNames returns only the identifiers GenColumns would produce.
func GenColumnNames(rawheaders []string) []string {
	columns, _ := GenColumns(rawheaders)
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	return names
}

// GenTableName normalizes a table name, falling back to tb0 when the raw name
// is complete junk.
func GenTableName(raw string) string {
	name := Normalize(raw)
	if name == "" {
		return TBPRE + "0"
	}
	return name
}
