package csv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/darianmavgo/mksql/converters"
	"github.com/darianmavgo/mksql/converters/common"
)

// sniffWindow is how much of the input is peeked at to find the first line.
const sniffWindow = 65536

func init() {
	converters.Register("csv", &csvDriver{})
}

type csvDriver struct{}

func (d *csvDriver) Open(src common.Source, config *common.ConversionConfig) (common.RowReader, error) {
	return NewReader(src, config)
}

// Reader reads delimited records for one pass over a source.
type Reader struct {
	rc        io.ReadCloser
	csvReader *csv.Reader
	first     bool
}

// Ensure Reader implements RowReader
var _ common.RowReader = (*Reader)(nil)

// NewReader opens src and prepares a record reader.
// If config.Delimiter is not set it is sniffed from the first non-empty line
// and stored back into config, so later passes reuse it.
func NewReader(src common.Source, config *common.ConversionConfig) (*Reader, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, err
	}

	br := bufio.NewReaderSize(rc, sniffWindow)

	// Detect delimiter if not set
	if config.Delimiter == 0 {
		peekBytes, err := br.Peek(sniffWindow)
		if err != nil && err != io.EOF && !errors.Is(err, bufio.ErrBufferFull) {
			rc.Close()
			return nil, fmt.Errorf("failed to read %s: %w", src.Name(), err)
		}
		line := common.FirstLine(peekBytes)
		if line == "" {
			rc.Close()
			return nil, fmt.Errorf("%w: %s is empty", common.ErrEmptyHeader, src.Name())
		}
		config.Delimiter = common.DetectDelimiter(line)
		if config.Verbose {
			log.Printf("[MKSQL] Detected delimiter %q in %s", config.Delimiter, src.Name())
		}
	}

	reader := csv.NewReader(br)
	reader.Comma = config.Delimiter
	reader.FieldsPerRecord = -1 // row length is checked by the emitter
	reader.LazyQuotes = true

	return &Reader{
		rc:        rc,
		csvReader: reader,
		first:     true,
	}, nil
}

// Read implements RowReader. Records the csv parser rejects are skipped.
func (r *Reader) Read() ([]string, error) {
	for {
		record, err := r.csvReader.Read()
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, err
		}
		if r.first {
			record[0] = strings.TrimPrefix(record[0], "\ufeff")
			r.first = false
		}
		return record, nil
	}
}

// Close implements RowReader.
func (r *Reader) Close() error {
	return r.rc.Close()
}
