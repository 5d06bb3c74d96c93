package record

import (
	"errors"
	"io"

	"github.com/arloliu/bts/format"
	"github.com/arloliu/bts/section"
	"github.com/arloliu/bts/storage"
)

// FileReader is a Reader over a memory-mapped record file.
//
// The Reader and every slice returned by ReadRawBytes are invalid after Close.
type FileReader struct {
	*Reader
	region *storage.Region
}

// Open maps the record file at path read-only and decodes its header.
func Open(path string) (*FileReader, error) {
	region, err := storage.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := NewReader(region.Bytes())
	if err != nil {
		return nil, errors.Join(err, region.Close())
	}

	return &FileReader{Reader: r, region: region}, nil
}

// Path returns the path of the mapped file.
func (f *FileReader) Path() string {
	return f.region.Path()
}

// Close unmaps the file.
func (f *FileReader) Close() error {
	return f.region.Close()
}

// WriteFile encodes samples and atomically publishes the record at path.
func WriteFile[D format.Sample](path string, tb section.Timebase, samples []D, opts ...EncoderOption) error {
	return storage.PublishFunc(path, func(w io.Writer) error {
		_, err := Write(w, tb, samples, opts...)
		return err
	})
}
