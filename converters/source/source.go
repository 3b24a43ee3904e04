// Package source provides the re-openable inputs a conversion reads from.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/darianmavgo/mksql/converters/common"
)

// FileSource reads a file from disk, decompressing it when its extension
// says so.
type FileSource struct {
	path        string
	compression Compression
}

var _ common.Source = (*FileSource)(nil)

// File checks that path is a readable regular file and returns a source for
// it. Missing paths give common.ErrInputNotFound; anything else that keeps
// the file from being read gives common.ErrInputUnreadable.
func File(path string) (*FileSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInputUnreadable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", common.ErrInputUnreadable, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInputUnreadable, err)
	}
	f.Close()

	return &FileSource{path: path, compression: DetectCompression(path)}, nil
}

// Name implements common.Source.
func (s *FileSource) Name() string {
	return s.path
}

// BaseName implements common.Source.
func (s *FileSource) BaseName() string {
	return baseName(s.path)
}

// Compression reports how the file is compressed.
func (s *FileSource) Compression() Compression {
	return s.compression
}

// Open implements common.Source.
func (s *FileSource) Open() (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInputUnreadable, err)
	}

	r, cleanup, err := s.compression.newReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &readCloser{Reader: r, closers: []func() error{cleanup, f.Close}}, nil
}

// MemorySource serves an in-memory copy of an input. It backs inputs that
// cannot be read twice, such as stdin.
type MemorySource struct {
	name string
	data []byte
}

var _ common.Source = (*MemorySource)(nil)

// Memory returns a source over data.
func Memory(name string, data []byte) *MemorySource {
	return &MemorySource{name: name, data: data}
}

// Stdin buffers r completely so it can be read once per pass.
func Stdin(r io.Reader) (*MemorySource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInputUnreadable, err)
	}
	return Memory("stdin", data), nil
}

// Name implements common.Source.
func (s *MemorySource) Name() string {
	return s.name
}

// BaseName implements common.Source.
func (s *MemorySource) BaseName() string {
	return baseName(s.name)
}

// Open implements common.Source.
func (s *MemorySource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

// Len returns the number of buffered bytes.
func (s *MemorySource) Len() int {
	return len(s.data)
}

// baseName strips the directory, a compression extension and one data
// extension: "dir/Sales 2024.csv.gz" gives "Sales 2024".
func baseName(path string) string {
	name := filepath.Base(path)
	if ext := DetectCompression(name).Extension(); ext != "" {
		name = name[:len(name)-len(ext)]
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

type readCloser struct {
	io.Reader
	closers []func() error
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
