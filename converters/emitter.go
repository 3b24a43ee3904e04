package converters

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/darianmavgo/mksql/converters/common"
)

// Emitter writes the SQL script for one table: a header comment, the CREATE
// TABLE statement and INSERT statements grouped into transaction blocks of
// at most batchSize rows.
type Emitter struct {
	w         *bufio.Writer
	dialect   common.Dialect
	table     string
	columns   []common.Column
	batchSize int
	insert    string
	batch     []string
	rows      int
	batches   int
	lossy     []int
}

// NewEmitter returns an Emitter writing to w. Column names must already be
// normalized and unique, with none named common.PrimaryKey; GenColumns
// guarantees that.
func NewEmitter(w io.Writer, dialect common.Dialect, table string, columns []common.Column, batchSize int) *Emitter {
	if batchSize < 1 {
		batchSize = common.DefaultBatchSize
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = dialect.QuoteIdentifier(c.Name)
	}

	return &Emitter{
		w:         bufio.NewWriterSize(w, 65536),
		dialect:   dialect,
		table:     table,
		columns:   columns,
		batchSize: batchSize,
		insert:    fmt.Sprintf("INSERT INTO %s (%s) VALUES\n", dialect.QuoteIdentifier(table), strings.Join(quoted, ", ")),
		batch:     make([]string, 0, batchSize),
		lossy:     make([]int, len(columns)),
	}
}

// WriteHeader writes the comment lines naming the source and dialect.
func (e *Emitter) WriteHeader(sourceName string) error {
	sourceName = strings.NewReplacer("\r", " ", "\n", " ").Replace(sourceName)
	if _, err := fmt.Fprintf(e.w, "-- Generated from %s\n-- Dialect: %s\n\n", sourceName, e.dialect.Name()); err != nil {
		return fmt.Errorf("failed to write header comment: %w", err)
	}
	return nil
}

// WriteCreateTable writes the CREATE TABLE IF NOT EXISTS statement with the
// synthetic primary key first.
func (e *Emitter) WriteCreateTable() error {
	var builder strings.Builder
	builder.Grow(len(e.table) + len(e.columns)*32)

	builder.WriteString("CREATE TABLE IF NOT EXISTS ")
	builder.WriteString(e.dialect.QuoteIdentifier(e.table))
	builder.WriteString(" (\n  ")
	builder.WriteString(e.dialect.QuoteIdentifier(common.PrimaryKey))
	builder.WriteByte(' ')
	builder.WriteString(e.dialect.PrimaryKeyType())
	for _, c := range e.columns {
		builder.WriteString(",\n  ")
		builder.WriteString(e.dialect.QuoteIdentifier(c.Name))
		builder.WriteByte(' ')
		builder.WriteString(e.dialect.TypeName(c.Type))
	}
	builder.WriteString("\n);\n\n")

	if _, err := e.w.WriteString(builder.String()); err != nil {
		return fmt.Errorf("failed to write CREATE TABLE: %w", err)
	}
	return nil
}

// WriteRow formats row as a value tuple and adds it to the current batch,
// flushing the batch when it is full. A row whose length does not match the
// column count is dropped and WriteRow reports false.
//
// Each value is checked on its own: numerals are written bare whatever the
// column type, everything else is quoted by the dialect.
func (e *Emitter) WriteRow(row []string) (bool, error) {
	if len(row) != len(e.columns) {
		return false, nil
	}

	var tuple strings.Builder
	tuple.WriteByte('(')
	for i, val := range row {
		if i > 0 {
			tuple.WriteString(", ")
		}
		val = strings.TrimSpace(val)
		if common.IsNumeral(val) {
			if common.HasLeadingZero(val) {
				e.lossy[i]++
			}
			tuple.WriteString(val)
			continue
		}
		tuple.WriteString(e.dialect.QuoteString(val))
	}
	tuple.WriteByte(')')

	e.batch = append(e.batch, tuple.String())
	e.rows++
	if len(e.batch) >= e.batchSize {
		return true, e.flush()
	}
	return true, nil
}

func (e *Emitter) flush() error {
	if len(e.batch) == 0 {
		return nil
	}

	e.w.WriteString("BEGIN;\n")
	e.w.WriteString(e.insert)
	for i, tuple := range e.batch {
		if i > 0 {
			e.w.WriteString(",\n")
		}
		e.w.WriteString(tuple)
	}
	// bufio.Writer errors are sticky, checking the last write is enough
	if _, err := e.w.WriteString(";\nCOMMIT;\n\n"); err != nil {
		return fmt.Errorf("failed to write batch: %w", err)
	}

	e.batches++
	e.batch = e.batch[:0]
	return nil
}

// Close flushes the last, possibly partial, batch and the underlying buffer.
// It does not close the destination writer.
func (e *Emitter) Close() error {
	if err := e.flush(); err != nil {
		return err
	}
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// Rows returns the number of accepted rows.
func (e *Emitter) Rows() int {
	return e.rows
}

// Batches returns the number of transaction blocks written so far.
func (e *Emitter) Batches() int {
	return e.batches
}

// LossyNumerals counts, per column name, the numerals with leading zeros
// that were written bare and will lose those zeros in the database.
func (e *Emitter) LossyNumerals() map[string]int {
	counts := map[string]int{}
	for i, n := range e.lossy {
		if n > 0 {
			counts[e.columns[i].Name] = n
		}
	}
	return counts
}
