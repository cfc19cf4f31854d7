// Package sys holds platform-specific file plumbing for the recorder,
// currently sparse-file preallocation.
package sys

import "errors"

// ErrPreallocNotSupported is returned when the underlying file or
// filesystem does not support preallocation. Callers treat this as a
// non-fatal, informational condition and fall back to plain truncation.
var ErrPreallocNotSupported = errors.New("preallocation not supported")
