//go:build linux

package sys

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Preallocate attempts to allocate backing blocks for f without changing
// the visible file size, using fallocate with KEEP_SIZE where available
// and falling back to a plain fallocate. Filesystems that reject the
// syscall report ErrPreallocNotSupported.
func Preallocate(f *os.File, size int64) error {
	if size <= 0 {
		return nil
	}
	fd := int(f.Fd())

	if err := unix.Fallocate(fd, unix.FALLOC_FL_KEEP_SIZE, 0, size); err == nil {
		return nil
	} else if !preallocUnsupported(err) {
		return fmt.Errorf("preallocation failed for %s: %w", f.Name(), err)
	}

	if err := unix.Fallocate(fd, 0, 0, size); err != nil {
		if preallocUnsupported(err) {
			return ErrPreallocNotSupported
		}
		return fmt.Errorf("preallocation failed for %s: %w", f.Name(), err)
	}
	return nil
}

func preallocUnsupported(err error) bool {
	return errors.Is(err, unix.ENOSYS) || errors.Is(err, unix.EINVAL) ||
		errors.Is(err, unix.EOPNOTSUPP) || errors.Is(err, unix.ENOTTY)
}
