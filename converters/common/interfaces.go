package common

import "io"

// Source is a re-openable input. Every Open starts again at the first byte,
// which lets a conversion make one sampling pass and one emitting pass.
type Source interface {
	// Name identifies the source in logs and in the generated script.
	Name() string
	// BaseName is the file name without directory, compression or data
	// extensions. It is the default table name.
	BaseName() string
	Open() (io.ReadCloser, error)
}

// RowReader reads the records of one pass over a source.
type RowReader interface {
	// Read returns the next record, or io.EOF after the last one.
	// Records that cannot be parsed are skipped by the reader.
	Read() ([]string, error)
	Close() error
}

// Driver defines the interface that must be implemented by a converter package.
type Driver interface {
	// Open starts a new pass over src. It may fill in config fields it
	// detects, such as the delimiter.
	Open(src Source, config *ConversionConfig) (RowReader, error)
}
