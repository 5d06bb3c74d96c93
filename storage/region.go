// Package storage exposes files as read-only byte regions and publishes
// finished records atomically.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/edsrzf/mmap-go"
	"go.uber.org/zap"

	"github.com/arloliu/bts/internal/logs"
)

const component = "storage"

// Region is a read-only memory-mapped view of a whole file.
//
// Bytes stays valid until Close. The mapping is shared with the page cache,
// so reading a few samples of a large record only faults in the pages that
// hold them.
type Region struct {
	path   string
	file   *os.File
	mapped mmap.MMap
}

// Open maps the file at path read-only. An empty file yields an empty region.
func Open(path string) (*Region, error) {
	log := logs.Named(component)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	region := &Region{path: path, file: file}
	if info.Size() == 0 {
		log.Debug("empty file, nothing mapped", zap.String(logs.FieldPath, path))
		return region, nil
	}

	mapped, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		log.Error("failed to mmap", zap.String(logs.FieldPath, path), zap.Error(err))
		_ = file.Close()

		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	region.mapped = mapped
	log.Debug("mapped", zap.String(logs.FieldPath, path), zap.Int(logs.FieldSize, len(mapped)))

	return region, nil
}

// Path returns the path the region was opened from.
func (r *Region) Path() string {
	return r.path
}

// Bytes returns the mapped bytes. The slice must not be modified.
func (r *Region) Bytes() []byte {
	return r.mapped
}

// Len returns the region size in bytes.
func (r *Region) Len() int {
	return len(r.mapped)
}

// Close unmaps the region and closes the file. It is safe to call more than once.
func (r *Region) Close() error {
	var errList []error
	if r.mapped != nil {
		if err := r.mapped.Unmap(); err != nil {
			errList = append(errList, err)
		}
		r.mapped = nil
	}
	if r.file != nil {
		if err := r.file.Close(); err != nil {
			errList = append(errList, err)
		}
		r.file = nil
	}

	return errors.Join(errList...)
}

// Publish atomically replaces the file at path with data.
func Publish(path string, data []byte) error {
	return PublishFunc(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// PublishFunc writes a file through write and atomically moves it to path.
//
// The content goes to a temporary file in the same directory, which is
// synced and renamed over path only if write succeeds. Readers therefore
// observe either the old file or the complete new one.
func PublishFunc(path string, write func(w io.Writer) error) error {
	log := logs.Named(component)

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		log.Warn("publish aborted", zap.String(logs.FieldPath, path), zap.Error(cause))

		return cause
	}

	if err := write(tmp); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	log.Debug("published", zap.String(logs.FieldPath, path))

	return nil
}
