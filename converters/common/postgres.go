package common

import "strings"

// PostgresDialect implements PostgreSQL-specific SQL dialect.
type PostgresDialect struct{}

// Name returns "postgres".
func (d *PostgresDialect) Name() string {
	return "postgres"
}

// QuoteIdentifier quotes a PostgreSQL identifier using double quotes.
func (d *PostgresDialect) QuoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// QuoteString doubles embedded single quotes (standard_conforming_strings).
func (d *PostgresDialect) QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (d *PostgresDialect) TypeName(t ColumnType) string {
	switch t {
	case TypeInteger:
		return "INTEGER"
	case TypeBoundedText:
		return BoundedTextType
	default:
		return UnboundedTextType
	}
}

func (d *PostgresDialect) PrimaryKeyType() string {
	return "SERIAL PRIMARY KEY"
}

func init() {
	d := &PostgresDialect{}
	RegisterDialect("postgres", d)
	RegisterDialect("postgresql", d)
}
