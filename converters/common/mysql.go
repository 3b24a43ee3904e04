package common

import "strings"

// MySQLDialect implements MySQL-specific SQL dialect.
type MySQLDialect struct{}

var mysqlEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// Name returns "mysql".
func (d *MySQLDialect) Name() string {
	return "mysql"
}

// QuoteIdentifier quotes a MySQL identifier using backticks.
func (d *MySQLDialect) QuoteIdentifier(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// QuoteString escapes quotes and backslashes with a backslash, the MySQL
// default (non ANSI_QUOTES, non NO_BACKSLASH_ESCAPES) string syntax.
func (d *MySQLDialect) QuoteString(s string) string {
	return "'" + mysqlEscaper.Replace(s) + "'"
}

func (d *MySQLDialect) TypeName(t ColumnType) string {
	switch t {
	case TypeInteger:
		return "INT"
	case TypeBoundedText:
		return BoundedTextType
	default:
		return UnboundedTextType
	}
}

func (d *MySQLDialect) PrimaryKeyType() string {
	return "INT AUTO_INCREMENT PRIMARY KEY"
}

func init() {
	RegisterDialect("mysql", &MySQLDialect{})
}
