package storage

import "os"

// MemBackend keeps the whole region in memory. It backs tests and
// short-lived recordings that never touch disk; Flush is a no-op.
type MemBackend struct {
	buf    []byte
	closed bool
}

var _ Backend = (*MemBackend)(nil)

// NewMemBackend returns an in-memory Backend with the given initial
// capacity.
func NewMemBackend(initialSize int64) *MemBackend {
	if initialSize < 0 {
		initialSize = 0
	}
	return &MemBackend{buf: make([]byte, initialSize)}
}

// NewMemBackendFrom returns an in-memory Backend seeded with a copy of
// data, typically the Bytes of a backend another component wrote.
func NewMemBackendFrom(data []byte) *MemBackend {
	return &MemBackend{buf: append([]byte(nil), data...)}
}

func (b *MemBackend) WriteAt(off int64, p []byte) error {
	if b.closed {
		return errStorage("write", os.ErrClosed)
	}
	if off < 0 || off+int64(len(p)) > int64(len(b.buf)) {
		return errOutOfRange("write", off, int64(len(p)), int64(len(b.buf)))
	}
	copy(b.buf[off:], p)
	return nil
}

func (b *MemBackend) ReadAt(off, length int64) ([]byte, error) {
	if b.closed {
		return nil, errStorage("read", os.ErrClosed)
	}
	if off < 0 || length < 0 || off+length > int64(len(b.buf)) {
		return nil, errOutOfRange("read", off, length, int64(len(b.buf)))
	}
	return b.buf[off : off+length], nil
}

func (b *MemBackend) EnsureCapacity(minSize int64) error {
	if b.closed {
		return errStorage("grow", os.ErrClosed)
	}
	if minSize <= int64(len(b.buf)) {
		return nil
	}
	newSize := int64(len(b.buf)) * 2
	if newSize < minSize {
		newSize = minSize
	}
	grown := make([]byte, newSize)
	copy(grown, b.buf)
	b.buf = grown
	return nil
}

func (b *MemBackend) Flush() error {
	if b.closed {
		return errStorage("flush", os.ErrClosed)
	}
	return nil
}

func (b *MemBackend) TruncateTo(size int64) error {
	if b.closed {
		return errStorage("truncate", os.ErrClosed)
	}
	if size < 0 || size > int64(len(b.buf)) {
		return errOutOfRange("truncate", size, 0, int64(len(b.buf)))
	}
	b.buf = b.buf[:size]
	return nil
}

func (b *MemBackend) Size() int64 {
	return int64(len(b.buf))
}

func (b *MemBackend) Close() error {
	b.closed = true
	return nil
}

// Bytes returns the current content of the region. Valid even after
// Close, so tests can inspect what a writer produced.
func (b *MemBackend) Bytes() []byte {
	return b.buf
}
