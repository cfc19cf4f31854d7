// Package storage presents a recording file as a single growable,
// byte-addressable region. The caller never pre-computes the final file
// size: the backend preallocates space, grows on demand and is truncated
// to the exact end-of-data offset at close. Implementations may be
// mmap-backed or purely in-memory; the recorder treats them
// interchangeably.
package storage

import (
	"fmt"

	"github.com/INLOpen/xmrlog/core"
)

// Backend is a mutable byte-addressable view over a backing store.
// Bytes beyond the written high-water mark are undefined until written;
// readers must only trust offsets covered by the header-declared totals.
type Backend interface {
	// WriteAt copies p into the region at off. The range must lie within
	// the current capacity; call EnsureCapacity first.
	WriteAt(off int64, p []byte) error
	// ReadAt returns length bytes starting at off. The returned slice may
	// alias the underlying mapping and is only valid until the backend is
	// grown, truncated or closed.
	ReadAt(off, length int64) ([]byte, error)
	// EnsureCapacity grows the backing allocation to at least minSize,
	// remapping as needed. It never shrinks.
	EnsureCapacity(minSize int64) error
	// Flush forces durability of written bytes.
	Flush() error
	// TruncateTo shrinks the backing store to size, dropping the
	// preallocated tail. Used once, at close.
	TruncateTo(size int64) error
	// Size returns the current capacity in bytes.
	Size() int64
	Close() error
}

func errStorage(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", core.ErrStorage, op, err)
}

func errOutOfRange(op string, off, length, size int64) error {
	return fmt.Errorf("%w: %s [%d:%d) outside region of %d bytes", core.ErrStorage, op, off, off+length, size)
}
