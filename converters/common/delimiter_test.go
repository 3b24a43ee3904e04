package common

import "testing"

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected rune
	}{
		{"Empty", "", ','},
		{"Comma", "a,b,c", ','},
		{"Tab", "a\tb\tc", '\t'},
		{"Semicolon", "a;b;c", ';'},
		{"Pipe", "a|b|c", '|'},
		{"MixedPreferComma", "a,b;c", ','}, // 2 fields each, comma is declared first
		{"CommaBeatsSemicolon", "a,b;c,d,e", ','},
		{"MixedPreferTab", "a\tb\tc,d", '\t'},
		{"SemicolonBeforeTab", "a;b\tc", ';'},
		{"QuotedCommas", `"last, first";"city, state";zip`, ';'},
		{"NoDelimiter", "abc", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectDelimiter(tt.line)
			if got != tt.expected {
				t.Errorf("DetectDelimiter(%q) = %q, want %q", tt.line, got, tt.expected)
			}
			// Same line, same answer.
			if again := DetectDelimiter(tt.line); again != got {
				t.Errorf("DetectDelimiter(%q) not deterministic: %q then %q", tt.line, got, again)
			}
		})
	}
}

func TestColumnCount(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		delimiter rune
		expected  int
	}{
		{"Empty", "", ',', 0},
		{"Single", "abc", ',', 1},
		{"CommaTwo", "a,b", ',', 2},
		{"CommaThree", "a,b,c", ',', 3},
		{"TabTwo", "a\tb", '\t', 2},
		{"QuotedDelimiter", `"a,b",c`, ',', 2},
		{"SemicolonOnCommaLine", "a,b;c,d,e", ';', 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColumnCount(tt.line, tt.delimiter)
			if got != tt.expected {
				t.Errorf("ColumnCount(%q, %q) = %d, want %d", tt.line, tt.delimiter, got, tt.expected)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		name     string
		sample   string
		expected string
	}{
		{"Empty", "", ""},
		{"NoNewline", "a,b", "a,b"},
		{"LF", "a,b\n1,2\n", "a,b"},
		{"CRLF", "a;b\r\n1;2\r\n", "a;b"},
		{"BOM", "\xEF\xBB\xBFa|b\n", "a|b"},
		{"LeadingBlankLines", "\n\r\na,b\n", "a,b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstLine([]byte(tt.sample)); got != tt.expected {
				t.Errorf("FirstLine(%q) = %q, want %q", tt.sample, got, tt.expected)
			}
		})
	}
}
