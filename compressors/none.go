package compressors

import (
	"fmt"

	"github.com/INLOpen/xmrlog/core"
)

// NoCompressionCompressor implements core.Compressor without performing
// compression. Its output equals its input, so every container written
// with it is stored raw.
type NoCompressionCompressor struct{}

var _ core.Compressor = (*NoCompressionCompressor)(nil)

func NewNoCompressionCompressor() *NoCompressionCompressor {
	return &NoCompressionCompressor{}
}

func (c *NoCompressionCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (c *NoCompressionCompressor) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if len(data) != uncompressedSize {
		return nil, fmt.Errorf("%w: stored %d bytes, expected %d", core.ErrCompression, len(data), uncompressedSize)
	}
	return data, nil
}

func (c *NoCompressionCompressor) Type() core.CompressionType {
	return core.CompressionNone
}
