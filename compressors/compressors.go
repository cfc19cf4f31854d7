// Package compressors provides the block compression schemes usable in
// .xmraw recordings. All implementations are single-shot: the whole
// batch is compressed in one call and the original size must be supplied
// on decompression, because none of the block formats self-describe it.
package compressors

import (
	"fmt"

	"github.com/INLOpen/xmrlog/core"
)

// ForType returns a compressor for the given scheme. level is only
// meaningful for LZ4: 0 selects the recorder default (9), 1-9 pick the
// high-compression level explicitly.
func ForType(ct core.CompressionType, level int) (core.Compressor, error) {
	switch ct {
	case core.CompressionLZ4:
		if level == 0 {
			return NewLZ4Compressor(), nil
		}
		return NewLZ4CompressorLevel(level), nil
	case core.CompressionSnappy:
		return NewSnappyCompressor(), nil
	case core.CompressionZstd:
		return NewZstdCompressor(), nil
	case core.CompressionNone:
		return NewNoCompressionCompressor(), nil
	default:
		return nil, fmt.Errorf("unknown compression type %d", ct)
	}
}
