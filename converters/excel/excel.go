package excel

import (
	"fmt"
	"io"
	"log"

	"github.com/xuri/excelize/v2"

	"github.com/darianmavgo/mksql/converters"
	"github.com/darianmavgo/mksql/converters/common"
)

func init() {
	converters.Register("excel", &excelDriver{})
}

type excelDriver struct{}

func (d *excelDriver) Open(src common.Source, config *common.ConversionConfig) (common.RowReader, error) {
	return NewReader(src, config)
}

// Reader reads the rows of one worksheet.
type Reader struct {
	file  *excelize.File
	rows  *excelize.Rows
	width int
}

// Ensure Reader implements RowReader
var _ common.RowReader = (*Reader)(nil)

// NewReader opens the workbook behind src and positions on config.Sheet, or
// on the first sheet when none is configured. The delimiter is not used.
func NewReader(src common.Source, config *common.ConversionConfig) (*Reader, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(rc)
	rc.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file %s: %w", src.Name(), err)
	}

	sheet := config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			f.Close()
			return nil, fmt.Errorf("no sheets found in Excel file %s", src.Name())
		}
		sheet = sheets[0]
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if config.Verbose {
		log.Printf("[MKSQL] Reading sheet %q of %s", sheet, src.Name())
	}

	return &Reader{file: f, rows: rows}, nil
}

// Read implements RowReader. Empty rows are skipped, like blank lines in a
// delimited file. Excel drops trailing empty cells, so short rows are padded
// to the width of the first row.
func (r *Reader) Read() ([]string, error) {
	for r.rows.Next() {
		cols, err := r.rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if len(cols) == 0 {
			continue
		}
		if r.width == 0 {
			r.width = len(cols)
		}
		return padRow(cols, r.width), nil
	}
	if err := r.rows.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return nil, io.EOF
}

// Close implements RowReader.
func (r *Reader) Close() error {
	rowsErr := r.rows.Close()
	if err := r.file.Close(); err != nil {
		return err
	}
	return rowsErr
}

// padRow pads the row with empty cells up to targetLen. Longer rows are left
// alone so the emitter can reject them.
func padRow(row []string, targetLen int) []string {
	if len(row) < targetLen {
		row = append(row, make([]string, targetLen-len(row))...)
	}
	return row
}
