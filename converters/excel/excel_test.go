package excel

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/darianmavgo/mksql/converters"
	"github.com/darianmavgo/mksql/converters/common"
	"github.com/darianmavgo/mksql/converters/source"
)

func writeWorkbook(t *testing.T, sheets map[string][][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReaderPadsShortRows(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"People": {
			{"Name", "Age", "City"},
			{"Ann", 31, "Oslo"},
			{"Bob", 42}, // trailing empty cell
		},
	})
	src, err := source.File(path)
	require.NoError(t, err)

	r, err := NewReader(src, &common.ConversionConfig{})
	require.NoError(t, err)
	defer r.Close()

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
	assert.Equal(t, [][]string{
		{"Name", "Age", "City"},
		{"Ann", "31", "Oslo"},
		{"Bob", "42", ""},
	}, rows)
}

func TestReaderUnknownSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{"Data": {{"a"}}})
	src, err := source.File(path)
	require.NoError(t, err)

	_, err = NewReader(src, &common.ConversionConfig{Sheet: "Missing"})
	assert.Error(t, err)
}

func TestConvertWorkbook(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Stock": {
			{"SKU", "Qty"},
			{"A-1", 5},
			{"B-2", 7},
		},
	})
	src, err := source.File(path)
	require.NoError(t, err)

	config := common.DefaultConversionConfig("mysql")
	config.Sheet = "Stock"

	var buf bytes.Buffer
	summary, err := converters.Convert(src, "excel", &buf, config)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Rows)
	assert.Equal(t, "book", summary.Table)

	out := buf.String()
	assert.Contains(t, out, "  `qty` INT")
	assert.Contains(t, out, "('A-1', 5),\n('B-2', 7);")
	assert.Equal(t, 1, strings.Count(out, "BEGIN;"))
}
