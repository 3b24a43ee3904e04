package common

import (
	"bytes"
	"encoding/csv"
	"strings"
)

// Delimiters lists the sniffing candidates in tie-break order.
var Delimiters = []rune{',', ';', '\t', '|'}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectDelimiter attempts to detect the delimiter from a raw line of text.
// It splits the line with every candidate, honoring quoted fields, and returns
// the one that produces the most fields. Ties go to the earlier candidate, so
// comma wins when nothing splits the line.
func DetectDelimiter(line string) rune {
	if line == "" {
		return ','
	}

	maxCount := -1
	winner := Delimiters[0]

	for _, delim := range Delimiters {
		count := ColumnCount(line, delim)
		if count > maxCount {
			maxCount = count
			winner = delim
		}
	}

	return winner
}

// ColumnCount calculates the number of fields a line splits into.
// Quoted fields are respected; if the line cannot be parsed it falls back to
// counting raw delimiters.
func ColumnCount(line string, delimiter rune) int {
	if line == "" {
		return 0
	}

	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	fields, err := reader.Read()
	if err != nil {
		return strings.Count(line, string(delimiter)) + 1
	}
	return len(fields)
}

// FirstLine returns the first non-empty line of sample, without a leading
// UTF-8 byte order mark or line terminator.
func FirstLine(sample []byte) string {
	sample = bytes.TrimPrefix(sample, utf8BOM)
	for len(sample) > 0 {
		line := sample
		rest := []byte(nil)
		if idx := bytes.IndexByte(sample, '\n'); idx != -1 {
			line, rest = sample[:idx], sample[idx+1:]
		}
		line = bytes.TrimRight(line, "\r")
		if len(line) > 0 {
			return string(line)
		}
		sample = rest
	}
	return ""
}
