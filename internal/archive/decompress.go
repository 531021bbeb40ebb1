package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// OpenContents opens a downloaded Contents index as a decompressed stream.
// The format is chosen by file extension: .gz and .xz are decompressed on
// the fly, anything else is read as-is. The decompressed data never touches
// the disk.
func OpenContents(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(path) {
	case ".gz":
		zr, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("could not decompress %s: %w", path, err)
		}
		return &stream{Reader: zr, closers: []io.Closer{zr, file}}, nil
	case ".xz":
		xr, err := xz.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("could not decompress %s: %w", path, err)
		}
		return &stream{Reader: xr, closers: []io.Closer{file}}, nil
	default:
		return file, nil
	}
}

type stream struct {
	io.Reader
	closers []io.Closer
}

func (s *stream) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
