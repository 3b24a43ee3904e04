package common

import (
	"fmt"
	"unicode/utf8"
)

const (
	DefaultBatchSize   = 500
	DefaultPreviewRows = 5
	DefaultSampleRows  = 10

	// MaxSampleRows bounds the type inference window.
	MaxSampleRows = 1000
	// MaxPreviewRows bounds the display-only preview.
	MaxPreviewRows = 100
)

// ConversionConfig stores configuration options for the conversion process.
// It is passed explicitly through every stage of a run.
type ConversionConfig struct {
	Dialect     string // Target SQL dialect name (mysql, postgres)
	TableName   string // Name of the table, normalized before use
	Delimiter   rune   // Delimiter used for CSV/text parsing, 0 to sniff
	BatchSize   int    // Rows per INSERT transaction block
	PreviewRows int    // Rows shown by Preview
	SampleRows  int    // Data rows used for type inference
	Sheet       string // Worksheet for spreadsheet inputs, empty for the first
	Verbose     bool   // Enable detailed logging
}

// DefaultConversionConfig returns a config with the default batch and sampling sizes.
func DefaultConversionConfig(dialect string) *ConversionConfig {
	return &ConversionConfig{
		Dialect:     dialect,
		BatchSize:   DefaultBatchSize,
		PreviewRows: DefaultPreviewRows,
		SampleRows:  DefaultSampleRows,
	}
}

// Validate checks the config and resolves its dialect.
// An unknown dialect is reported as ErrUnsupportedDialect.
func (c *ConversionConfig) Validate() (Dialect, error) {
	d, err := LookupDialect(c.Dialect)
	if err != nil {
		return nil, err
	}
	if c.BatchSize < 1 {
		return nil, fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.SampleRows < 0 || c.SampleRows > MaxSampleRows {
		return nil, fmt.Errorf("sample rows must be between 0 and %d, got %d", MaxSampleRows, c.SampleRows)
	}
	if c.PreviewRows < 0 || c.PreviewRows > MaxPreviewRows {
		return nil, fmt.Errorf("preview rows must be between 0 and %d, got %d", MaxPreviewRows, c.PreviewRows)
	}
	switch c.Delimiter {
	case '"', '\r', '\n', utf8.RuneError:
		return nil, fmt.Errorf("unsupported delimiter %q", c.Delimiter)
	}
	return d, nil
}
