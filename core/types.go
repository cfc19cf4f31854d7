package core

import "fmt"

// CompressionType identifies the block compression scheme of a recording.
// The value is stored on disk in the low bits of the file header options
// field, so the constants below are part of the file format. LZ4 is zero
// because files written by the reference recorder carry options 0x0000.
type CompressionType byte

const (
	CompressionLZ4    CompressionType = 0
	CompressionSnappy CompressionType = 1
	CompressionZstd   CompressionType = 2
	CompressionNone   CompressionType = 3
)

// Compressor defines the interface for single-shot block compression.
// The schemes in use do not self-describe the original size, so the
// caller must remember it and supply it on decompression.
type Compressor interface {
	// Compress compresses the input in one call. An implementation may
	// return a zero-length slice for non-empty input to signal that the
	// data is incompressible; the container codec then stores it raw.
	Compress(data []byte) ([]byte, error)
	// Decompress decompresses data into a buffer of exactly
	// uncompressedSize bytes and fails if the produced size differs.
	Decompress(data []byte, uncompressedSize int) ([]byte, error)
	// Type returns the CompressionType identifier for this compressor.
	Type() CompressionType
}

// String returns the string representation of the CompressionType.
func (ct CompressionType) String() string {
	switch ct {
	case CompressionLZ4:
		return "lz4"
	case CompressionSnappy:
		return "snappy"
	case CompressionZstd:
		return "zstd"
	case CompressionNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseCompressionType converts a configuration string to a CompressionType.
func ParseCompressionType(s string) (CompressionType, error) {
	switch s {
	case "lz4", "":
		return CompressionLZ4, nil
	case "snappy":
		return CompressionSnappy, nil
	case "zstd":
		return CompressionZstd, nil
	case "none":
		return CompressionNone, nil
	default:
		return 0, fmt.Errorf("unknown compression type %q", s)
	}
}
