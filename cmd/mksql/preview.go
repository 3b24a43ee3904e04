package main

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// renderPreview prints rows under header as a text table. Rows are cut or
// padded to the header width so ragged input still lines up.
func renderPreview(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, row := range rows {
		fitted := make([]string, len(header))
		copy(fitted, row)
		table.Append(fitted)
	}

	table.Render()
}
