package embedix

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// openCorpus opens an ingestion source, transparently decompressing by file
// extension.
func openCorpus(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}

	switch filepath.Ext(path) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open corpus %s: %w", path, err)
		}
		return &corpusReader{Reader: zr, closers: []io.Closer{zr, f}}, nil

	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open corpus %s: %w", path, err)
		}
		return &corpusReader{Reader: zr, closers: []io.Closer{zr.IOReadCloser(), f}}, nil

	case ".lz4":
		return &corpusReader{Reader: lz4.NewReader(f), closers: []io.Closer{f}}, nil

	default:
		return f, nil
	}
}

// corpusReader pairs a decompressing reader with every underlying resource
// that must be released.
type corpusReader struct {
	io.Reader
	closers []io.Closer
}

func (r *corpusReader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
