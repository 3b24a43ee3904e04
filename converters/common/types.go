package common

import (
	"regexp"
	"strings"
)

// ColumnType is the inferred storage class of a column.
type ColumnType int

const (
	// TypeUnboundedText is the fallback when there is no evidence either way.
	TypeUnboundedText ColumnType = iota
	// TypeBoundedText holds short free text (VARCHAR(255)).
	TypeBoundedText
	// TypeInteger holds numerals.
	TypeInteger
)

const (
	BoundedTextType   = "VARCHAR(255)"
	UnboundedTextType = "TEXT"
)

func (t ColumnType) String() string {
	switch t {
	case TypeInteger:
		return "INTEGER"
	case TypeBoundedText:
		return "BOUNDED_TEXT"
	default:
		return "UNBOUNDED_TEXT"
	}
}

// Column is one user column of a generated table.
type Column struct {
	Original string     // header text as read from the input
	Name     string     // normalized, unique identifier
	Type     ColumnType // inferred from sample rows
}

var numeral = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// IsNumeral reports whether v, once trimmed, is a plain integer or decimal
// numeral with an optional sign. Exponents and thousands separators are not
// accepted.
func IsNumeral(v string) bool {
	return numeral.MatchString(strings.TrimSpace(v))
}

// HasLeadingZero reports whether a numeral would lose leading zeros when
// emitted unquoted, as in "007".
func HasLeadingZero(v string) bool {
	v = strings.TrimLeft(strings.TrimSpace(v), "+-")
	return len(v) > 1 && v[0] == '0' && v[1] >= '0' && v[1] <= '9'
}

// InferColumnType classifies a column from its sample values.
// All numerals gives TypeInteger. Any non-numeral with content gives
// TypeBoundedText. Otherwise, including when there are no samples at all,
// the result is TypeUnboundedText.
func InferColumnType(samples []string) ColumnType {
	if len(samples) == 0 {
		return TypeUnboundedText
	}

	allNumeric := true
	anyText := false
	for _, v := range samples {
		if IsNumeral(v) {
			continue
		}
		allNumeric = false
		if strings.TrimSpace(v) != "" {
			anyText = true
		}
	}

	switch {
	case allNumeric:
		return TypeInteger
	case anyText:
		return TypeBoundedText
	default:
		return TypeUnboundedText
	}
}

// InferColumnTypes infers the type of each of n columns from sample rows.
// A short row still contributes the values it has.
func InferColumnTypes(rows [][]string, n int) []ColumnType {
	types := make([]ColumnType, n)
	samples := make([]string, 0, len(rows))
	for idx := 0; idx < n; idx++ {
		samples = samples[:0]
		for _, row := range rows {
			if idx < len(row) {
				samples = append(samples, row[idx])
			}
		}
		types[idx] = InferColumnType(samples)
	}
	return types
}
