package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/INLOpen/xmrlog/core"
	"github.com/INLOpen/xmrlog/sys"
)

const (
	// DefaultInitialSize is the preallocation used when the caller does
	// not specify one.
	DefaultInitialSize = 10 * 1024 * 1024

	// growAlign rounds capacity growth up to a multiple of this value.
	growAlign = 64 * 1024

	minInitialSize = 4 * 1024
)

// mmapBackend maps a file read-write (writer) or read-only (reader).
// Growth unmaps, extends the file and remaps; the caller must not hold
// slices from ReadAt across a grow or truncate.
type mmapBackend struct {
	file     *os.File
	data     mmap.MMap
	size     int64
	readOnly bool
	closed   bool
}

var errReadOnly = errors.New("backend is read-only")

// Create creates (or overwrites) the file at path and maps it read-write
// with initialSize bytes of capacity. Preallocation is best-effort: on
// filesystems without fallocate support the file is merely truncated,
// which produces a sparse file.
func Create(path string, initialSize int64) (Backend, error) {
	if initialSize <= 0 {
		initialSize = DefaultInitialSize
	}
	if initialSize < minInitialSize {
		initialSize = minInitialSize
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, errStorage("create "+path, err)
	}
	if err := sys.Preallocate(f, initialSize); err != nil && !errors.Is(err, sys.ErrPreallocNotSupported) {
		f.Close()
		return nil, errStorage("preallocate "+path, err)
	}
	if err := f.Truncate(initialSize); err != nil {
		f.Close()
		return nil, errStorage("truncate "+path, err)
	}
	m, err := mmap.MapRegion(f, int(initialSize), mmap.RDWR, 0, 0)
	if err != nil {
		f.Close()
		return nil, errStorage("map "+path, err)
	}
	return &mmapBackend{file: f, data: m, size: initialSize}, nil
}

// OpenRead maps an existing file read-only. Mutating operations fail.
func OpenRead(path string) (Backend, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errStorage("open "+path, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errStorage("stat "+path, err)
	}
	b := &mmapBackend{file: f, size: st.Size(), readOnly: true}
	if b.size > 0 {
		m, err := mmap.MapRegion(f, int(b.size), mmap.RDONLY, 0, 0)
		if err != nil {
			f.Close()
			return nil, errStorage("map "+path, err)
		}
		b.data = m
	}
	return b, nil
}

func (b *mmapBackend) WriteAt(off int64, p []byte) error {
	if b.closed {
		return errStorage("write", os.ErrClosed)
	}
	if b.readOnly {
		return errStorage("write", errReadOnly)
	}
	if off < 0 || off+int64(len(p)) > b.size {
		return errOutOfRange("write", off, int64(len(p)), b.size)
	}
	copy(b.data[off:], p)
	return nil
}

func (b *mmapBackend) ReadAt(off, length int64) ([]byte, error) {
	if b.closed {
		return nil, errStorage("read", os.ErrClosed)
	}
	if off < 0 || length < 0 || off+length > b.size {
		return nil, errOutOfRange("read", off, length, b.size)
	}
	return b.data[off : off+length], nil
}

func (b *mmapBackend) EnsureCapacity(minSize int64) error {
	if b.closed {
		return errStorage("grow", os.ErrClosed)
	}
	if b.readOnly {
		return errStorage("grow", errReadOnly)
	}
	if minSize <= b.size {
		return nil
	}
	newSize := b.size * 2
	if newSize < minSize {
		newSize = minSize
	}
	newSize = (newSize + growAlign - 1) &^ int64(growAlign-1)

	if err := b.data.Unmap(); err != nil {
		return errStorage("unmap for grow", err)
	}
	b.data = nil
	if err := sys.Preallocate(b.file, newSize); err != nil && !errors.Is(err, sys.ErrPreallocNotSupported) {
		return errStorage("preallocate", err)
	}
	if err := b.file.Truncate(newSize); err != nil {
		return errStorage("truncate for grow", err)
	}
	m, err := mmap.MapRegion(b.file, int(newSize), mmap.RDWR, 0, 0)
	if err != nil {
		return errStorage("remap", err)
	}
	b.data = m
	b.size = newSize
	return nil
}

func (b *mmapBackend) Flush() error {
	if b.closed {
		return errStorage("flush", os.ErrClosed)
	}
	if b.data == nil {
		return nil
	}
	if err := b.data.Flush(); err != nil {
		return errStorage("flush", err)
	}
	return nil
}

func (b *mmapBackend) TruncateTo(size int64) error {
	if b.closed {
		return errStorage("truncate", os.ErrClosed)
	}
	if b.readOnly {
		return errStorage("truncate", errReadOnly)
	}
	if size < 0 || size > b.size {
		return fmt.Errorf("%w: truncate to %d outside region of %d bytes", core.ErrStorage, size, b.size)
	}
	if err := b.data.Unmap(); err != nil {
		return errStorage("unmap for truncate", err)
	}
	b.data = nil
	if err := b.file.Truncate(size); err != nil {
		return errStorage("truncate", err)
	}
	b.size = size
	if size > 0 {
		m, err := mmap.MapRegion(b.file, int(size), mmap.RDWR, 0, 0)
		if err != nil {
			return errStorage("remap after truncate", err)
		}
		b.data = m
	}
	return nil
}

func (b *mmapBackend) Size() int64 {
	return b.size
}

func (b *mmapBackend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	var mapErr error
	if b.data != nil {
		mapErr = b.data.Unmap()
		b.data = nil
	}
	closeErr := b.file.Close()
	if mapErr != nil {
		return errStorage("unmap", mapErr)
	}
	if closeErr != nil {
		return errStorage("close", closeErr)
	}
	return nil
}
