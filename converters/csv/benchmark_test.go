package csv

import (
	"bytes"
	"io"
	"testing"

	"github.com/darianmavgo/mksql/converters/common"
	"github.com/darianmavgo/mksql/converters/source"
)

func BenchmarkRead(b *testing.B) {
	// Generate a CSV with 10 columns and many rows
	var buf bytes.Buffer
	buf.WriteString("col1,col2,col3,col4,col5,col6,col7,col8,col9,col10\n")
	rowStr := "val1,val2,val3,val4,val5,val6,val7,val8,val9,val10\n"
	// 1000 rows per iteration
	for i := 0; i < 1000; i++ {
		buf.WriteString(rowStr)
	}
	src := source.Memory("bench.csv", buf.Bytes())

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		reader, err := NewReader(src, &common.ConversionConfig{})
		if err != nil {
			b.Fatalf("NewReader failed: %v", err)
		}
		for {
			row, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				b.Fatalf("Read failed: %v", err)
			}
			_ = row[0]
		}
		reader.Close()
	}
}
