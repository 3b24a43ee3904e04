package csv

import (
	"testing"

	"github.com/darianmavgo/mksql/converters/common"
	"github.com/darianmavgo/mksql/converters/source"
)

func TestCSVDelimiterDetection(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected rune
		cols     int
	}{
		{
			name:     "Comma",
			content:  "col1,col2,col3\nval1,val2,val3",
			expected: ',',
			cols:     3,
		},
		{
			name:     "Tab",
			content:  "col1\tcol2\tcol3\nval1\tval2\tval3",
			expected: '\t',
			cols:     3,
		},
		{
			name:     "Pipe",
			content:  "col1|col2|col3\nval1|val2|val3",
			expected: '|',
			cols:     3,
		},
		{
			name:     "Semicolon",
			content:  "col1;col2;col3\nval1;val2;val3",
			expected: ';',
			cols:     3,
		},
		{
			name:     "SemicolonWithDecimalCommas",
			content:  "price;qty\n\"1,50\";2",
			expected: ';',
			cols:     2,
		},
		{
			name:     "LeadingBlankLines",
			content:  "\n\ncol1|col2\nval1|val2",
			expected: '|',
			cols:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &common.ConversionConfig{}
			r, err := NewReader(source.Memory("detect.csv", []byte(tt.content)), config)
			if err != nil {
				t.Fatalf("Failed to create reader: %v", err)
			}
			defer r.Close()

			if config.Delimiter != tt.expected {
				t.Errorf("Detected delimiter %q, want %q", config.Delimiter, tt.expected)
			}

			headers, err := r.Read()
			if err != nil {
				t.Fatalf("Failed to read headers: %v", err)
			}
			if len(headers) != tt.cols {
				t.Errorf("Detected %d headers, want %d", len(headers), tt.cols)
			}
		})
	}
}

func TestCSVExplicitDelimiter(t *testing.T) {
	// a configured delimiter wins over sniffing
	config := &common.ConversionConfig{Delimiter: ';'}
	r, err := NewReader(source.Memory("explicit.csv", []byte("a,b,c;d\n")), config)
	if err != nil {
		t.Fatalf("Failed to create reader: %v", err)
	}
	defer r.Close()

	headers, err := r.Read()
	if err != nil {
		t.Fatalf("Failed to read headers: %v", err)
	}
	if len(headers) != 2 || headers[0] != "a,b,c" {
		t.Errorf("got headers %q, want [a,b,c d]", headers)
	}
}
