package compressors

import (
	"fmt"

	"github.com/INLOpen/xmrlog/core"
	lz4 "github.com/pierrec/lz4/v4"
)

// LZ4Compressor implements core.Compressor using the LZ4 block format.
// This is the scheme of the reference recorder; files with options 0
// decode through it.
type LZ4Compressor struct {
	level lz4.CompressionLevel
}

var _ core.Compressor = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 block compressor at the default high
// compression level of the reference recorder (9).
func NewLZ4Compressor() *LZ4Compressor {
	return NewLZ4CompressorLevel(9)
}

// NewLZ4CompressorLevel creates an LZ4 block compressor. Level 0 selects
// the fast path, levels 1-9 the high-compression encoder.
func NewLZ4CompressorLevel(level int) *LZ4Compressor {
	if level < 0 {
		level = 0
	}
	if level > 9 {
		level = 9
	}
	var lvl lz4.CompressionLevel
	if level > 0 {
		// lz4.Level1..Level9 are powers of two starting at 1<<9.
		lvl = lz4.CompressionLevel(1 << (8 + level))
	}
	return &LZ4Compressor{level: lvl}
}

func (c *LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	var (
		n   int
		err error
	)
	if c.level == 0 {
		n, err = lz4.CompressBlock(data, dst, nil)
	} else {
		n, err = lz4.CompressBlockHC(data, dst, c.level, nil, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: lz4 compress: %v", core.ErrCompression, err)
	}
	// n == 0 signals incompressible input; the caller stores it raw.
	return dst[:n], nil
}

func (c *LZ4Compressor) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if uncompressedSize == 0 {
		if len(data) != 0 {
			return nil, fmt.Errorf("%w: lz4: %d compressed bytes for empty output", core.ErrCompression, len(data))
		}
		return nil, nil
	}
	dst := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4 decompress: %v", core.ErrCompression, err)
	}
	if n != uncompressedSize {
		return nil, fmt.Errorf("%w: lz4 produced %d bytes, expected %d", core.ErrCompression, n, uncompressedSize)
	}
	return dst, nil
}

func (c *LZ4Compressor) Type() core.CompressionType {
	return core.CompressionLZ4
}
