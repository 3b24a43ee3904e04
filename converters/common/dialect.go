package common

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Dialect defines the database-specific spelling of the generated script.
type Dialect interface {
	// Name is the canonical dialect name.
	Name() string
	// QuoteIdentifier quotes a table or column name.
	QuoteIdentifier(string) string
	// QuoteString escapes a value and wraps it in single quotes.
	QuoteString(string) string
	// TypeName spells an inferred column type.
	TypeName(ColumnType) string
	// PrimaryKeyType is the type and constraint of the synthetic id column.
	PrimaryKeyType() string
}

var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]Dialect)
)

// RegisterDialect makes a dialect available under name.
// If RegisterDialect is called twice with the same name or if d is nil, it panics.
func RegisterDialect(name string, d Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	if d == nil {
		panic("common: RegisterDialect dialect is nil")
	}
	if _, dup := dialects[name]; dup {
		panic("common: RegisterDialect called twice for dialect " + name)
	}
	dialects[name] = d
}

// LookupDialect returns the dialect registered under name, ignoring case.
func LookupDialect(name string) (Dialect, error) {
	dialectsMu.RLock()
	d, ok := dialects[strings.ToLower(strings.TrimSpace(name))]
	dialectsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnsupportedDialect, name, strings.Join(Dialects(), ", "))
	}
	return d, nil
}

// Dialects returns a sorted list of the registered dialect names.
func Dialects() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	list := make([]string, 0, len(dialects))
	for name := range dialects {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}
