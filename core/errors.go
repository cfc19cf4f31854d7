package core

import "errors"

// Error taxonomy for the recorder. All errors are surfaced to the caller
// wrapped with %w so they can be classified with errors.Is; there is no
// internal recovery beyond the header-last-write ordering in the Writer.
var (
	// ErrInvalidMagic reports that a file does not start with the .xmraw
	// magic bytes.
	ErrInvalidMagic = errors.New("invalid file magic")

	// ErrUnsupportedVersion reports a format version newer than this
	// implementation understands.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrInvalidFormat reports a structurally malformed file header
	// (wrong declared header size, unknown option bits, short file).
	ErrInvalidFormat = errors.New("invalid file format")

	// ErrCorruptContainer reports that a container's declared sizes or
	// record count disagree with its actual content. Offsets beyond a
	// corrupt container cannot be trusted, so iteration stops there.
	ErrCorruptContainer = errors.New("corrupt container")

	// ErrTruncatedRecord reports fewer bytes than a record's prefix or
	// declared payload length demands.
	ErrTruncatedRecord = errors.New("truncated record")

	// ErrCompression reports a failure of the underlying block
	// compression primitive.
	ErrCompression = errors.New("compression failure")

	// ErrStorage reports a backing-store allocation, mapping, write,
	// flush or truncate failure.
	ErrStorage = errors.New("storage failure")
)
