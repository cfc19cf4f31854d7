//go:build !linux

package sys

import "os"

// Preallocate is not implemented on this platform. Callers fall back to
// truncation, which leaves a sparse file on most filesystems.
func Preallocate(_ *os.File, size int64) error {
	if size <= 0 {
		return nil
	}
	return ErrPreallocNotSupported
}
