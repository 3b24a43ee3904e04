package source

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression identifies how an input file is compressed.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGZ
	CompressionBZ2
	CompressionXZ
	CompressionZSTD
)

var extensions = map[Compression]string{
	CompressionGZ:   ".gz",
	CompressionBZ2:  ".bz2",
	CompressionXZ:   ".xz",
	CompressionZSTD: ".zst",
}

// Extension returns the file extension for this compression type, or "".
func (c Compression) Extension() string {
	return extensions[c]
}

func (c Compression) String() string {
	if c == CompressionNone {
		return "none"
	}
	return strings.TrimPrefix(c.Extension(), ".")
}

// DetectCompression detects the compression type from a file path.
func DetectCompression(path string) Compression {
	path = strings.ToLower(path)
	for c, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return c
		}
	}
	return CompressionNone
}

// newReader wraps r with a decompression reader. The returned cleanup
// releases the decompressor but not r.
func (c Compression) newReader(r io.Reader) (io.Reader, func() error, error) {
	switch c {
	case CompressionNone:
		return r, func() error { return nil }, nil

	case CompressionGZ:
		gzReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzReader, gzReader.Close, nil

	case CompressionBZ2:
		// bzip2.NewReader doesn't need closing
		return bzip2.NewReader(r), func() error { return nil }, nil

	case CompressionXZ:
		xzReader, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xzReader, func() error { return nil }, nil

	case CompressionZSTD:
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return decoder, func() error {
			decoder.Close()
			return nil
		}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported compression type: %v", c)
	}
}
