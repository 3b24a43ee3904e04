package converters

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/darianmavgo/mksql/converters/common"
)

// DefaultDateFormat is the strftime layout of the output file name prefix.
const DefaultDateFormat = "%d.%m.%Y"

// Summary reports the outcome of a conversion.
type Summary struct {
	Source    string          // Display name of the input
	Output    string          // Path of the written script, empty when streamed
	Table     string          // Normalized table name
	Dialect   string          // Canonical dialect name
	Delimiter rune            // Delimiter used, 0 for spreadsheets
	Columns   []common.Column // User columns in table order
	Rows      int             // Accepted data rows
	Batches   int             // Transaction blocks written
	Warnings  []string        // Renamed columns and lossy numerals
}

// Convert generates the SQL script for src and writes it to w.
//
// The source is read twice: the first pass takes the header and up to
// config.SampleRows rows to name and type the columns, the second pass
// streams every data row into batched INSERTs. Configuration errors and an
// empty header are reported before anything is written to w.
func Convert(src common.Source, driverName string, w io.Writer, config *common.ConversionConfig) (*Summary, error) {
	if config == nil {
		return nil, errors.New("conversion config is required")
	}
	dialect, err := config.Validate()
	if err != nil {
		return nil, err
	}

	header, samples, err := readSample(src, driverName, config, config.SampleRows)
	if err != nil {
		return nil, err
	}

	columns, warnings := common.GenColumns(header)
	for i, t := range common.InferColumnTypes(samples, len(columns)) {
		columns[i].Type = t
	}

	table := config.TableName
	if table == "" {
		table = src.BaseName()
	}
	table = common.GenTableName(table)

	if config.Verbose {
		log.Printf("[MKSQL] Table %s: %d columns, %d sample rows, dialect %s", table, len(columns), len(samples), dialect.Name())
	}

	emitter := NewEmitter(w, dialect, table, columns, config.BatchSize)
	if err := emitter.WriteHeader(src.Name()); err != nil {
		return nil, err
	}
	if err := emitter.WriteCreateTable(); err != nil {
		return nil, err
	}
	if err := emitRows(src, driverName, config, emitter); err != nil {
		return nil, err
	}
	if err := emitter.Close(); err != nil {
		return nil, err
	}

	lossy := emitter.LossyNumerals()
	names := make([]string, 0, len(lossy))
	for name := range lossy {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		warnings = append(warnings, fmt.Sprintf("column %q: %d numeric values with leading zeros written unquoted, the zeros will be lost", name, lossy[name]))
	}

	if config.Verbose {
		log.Printf("[MKSQL] Wrote %d rows in %d batches", emitter.Rows(), emitter.Batches())
	}

	return &Summary{
		Source:    src.Name(),
		Table:     table,
		Dialect:   dialect.Name(),
		Delimiter: config.Delimiter,
		Columns:   columns,
		Rows:      emitter.Rows(),
		Batches:   emitter.Batches(),
		Warnings:  warnings,
	}, nil
}

// readSample reads the header row and up to limit data rows.
func readSample(src common.Source, driverName string, config *common.ConversionConfig, limit int) ([]string, [][]string, error) {
	reader, err := Open(driverName, src, config)
	if err != nil {
		return nil, nil, err
	}
	defer reader.Close()

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%w: %s has no rows", common.ErrEmptyHeader, src.Name())
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	if isBlank(header) {
		return nil, nil, fmt.Errorf("%w: %s", common.ErrEmptyHeader, src.Name())
	}

	var rows [][]string
	for len(rows) < limit {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read sample row: %w", err)
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// emitRows makes the second pass, skipping the header again.
func emitRows(src common.Source, driverName string, config *common.ConversionConfig, emitter *Emitter) error {
	reader, err := Open(driverName, src, config)
	if err != nil {
		return err
	}
	defer reader.Close()

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: %s changed between passes", common.ErrEmptyHeader, src.Name())
		}
		return fmt.Errorf("failed to read header: %w", err)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read row: %w", err)
		}
		if _, err := emitter.WriteRow(row); err != nil {
			return err
		}
	}
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Preview returns the header and up to config.PreviewRows data rows of src,
// exactly as read. It is for display only and does not affect inference.
func Preview(src common.Source, driverName string, config *common.ConversionConfig) ([]string, [][]string, error) {
	if config == nil {
		return nil, nil, errors.New("conversion config is required")
	}
	return readSample(src, driverName, config, config.PreviewRows)
}

// OutputPath builds <dir>/<date>_<table>.sql. dateFormat is a strftime
// layout; an empty layout drops the date prefix.
func OutputPath(dir, dateFormat, table string, now time.Time) string {
	name := table + ".sql"
	if dateFormat != "" {
		name = strftime.Format(dateFormat, now) + "_" + name
	}
	return filepath.Join(dir, name)
}

// ConvertFile converts src into the file at outputPath. The script is written
// to a temporary file in the same directory and renamed into place only when
// the conversion succeeds, so a failed run leaves no partial output behind.
func ConvertFile(src common.Source, driverName string, outputPath string, config *common.ConversionConfig) (*Summary, error) {
	if config == nil {
		return nil, errors.New("conversion config is required")
	}
	if _, err := config.Validate(); err != nil {
		return nil, err
	}

	dir := filepath.Dir(outputPath)
	createdDirs, err := makeDirs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".mksql-*.sql.tmp")
	if err != nil {
		removeDirs(createdDirs)
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	if config.Verbose {
		log.Printf("[MKSQL] Created temp file: %s", tmpPath)
	}

	summary, err := Convert(src, driverName, tmpFile, config)
	if closeErr := tmpFile.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close output: %w", closeErr)
	}
	if err == nil {
		err = os.Chmod(tmpPath, 0644)
	}
	if err == nil {
		err = os.Rename(tmpPath, outputPath)
	}
	if err != nil {
		os.Remove(tmpPath)
		removeDirs(createdDirs)
		return nil, err
	}

	summary.Output = outputPath
	return summary, nil
}

// makeDirs creates dir and any missing parents. It returns the directories
// it had to create, deepest first.
func makeDirs(dir string) ([]string, error) {
	var missing []string
	for d := dir; ; {
		if _, err := os.Stat(d); err == nil {
			break
		}
		missing = append(missing, d)
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return missing, nil
}

// removeDirs removes directories made by makeDirs. os.Remove refuses
// non-empty directories, so anything else written there in the meantime
// stays.
func removeDirs(dirs []string) {
	for _, d := range dirs {
		os.Remove(d)
	}
}
