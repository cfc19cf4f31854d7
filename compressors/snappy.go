package compressors

import (
	"fmt"

	"github.com/INLOpen/xmrlog/core"
	"github.com/golang/snappy"
)

// SnappyCompressor implements core.Compressor using the Snappy block
// format (snappy.Encode/Decode, not the streaming framing).
type SnappyCompressor struct{}

var _ core.Compressor = (*SnappyCompressor)(nil)

func NewSnappyCompressor() *SnappyCompressor {
	return &SnappyCompressor{}
}

func (c *SnappyCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	return snappy.Encode(nil, data), nil
}

func (c *SnappyCompressor) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if uncompressedSize == 0 {
		if len(data) != 0 {
			return nil, fmt.Errorf("%w: snappy: %d compressed bytes for empty output", core.ErrCompression, len(data))
		}
		return nil, nil
	}
	decompressed, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("%w: snappy decompress: %v", core.ErrCompression, err)
	}
	if len(decompressed) != uncompressedSize {
		return nil, fmt.Errorf("%w: snappy produced %d bytes, expected %d", core.ErrCompression, len(decompressed), uncompressedSize)
	}
	return decompressed, nil
}

func (c *SnappyCompressor) Type() core.CompressionType {
	return core.CompressionSnappy
}
