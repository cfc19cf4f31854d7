package compressors

import (
	"fmt"
	"sync"

	"github.com/INLOpen/xmrlog/core"
	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor implements core.Compressor using zstd in single-shot
// mode (EncodeAll/DecodeAll). Encoder and decoder are created lazily and
// reused; both are safe for concurrent use in *All mode.
type ZstdCompressor struct {
	once    sync.Once
	initErr error
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

var _ core.Compressor = (*ZstdCompressor)(nil)

func NewZstdCompressor() *ZstdCompressor {
	return &ZstdCompressor{}
}

func (c *ZstdCompressor) init() error {
	c.once.Do(func() {
		c.encoder, c.initErr = zstd.NewWriter(nil, zstd.WithEncoderCRC(false))
		if c.initErr != nil {
			return
		}
		c.decoder, c.initErr = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(256*1024*1024))
	})
	if c.initErr != nil {
		return fmt.Errorf("%w: zstd init: %v", core.ErrCompression, c.initErr)
	}
	return nil
}

func (c *ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if err := c.init(); err != nil {
		return nil, err
	}
	return c.encoder.EncodeAll(data, nil), nil
}

func (c *ZstdCompressor) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if uncompressedSize == 0 {
		if len(data) != 0 {
			return nil, fmt.Errorf("%w: zstd: %d compressed bytes for empty output", core.ErrCompression, len(data))
		}
		return nil, nil
	}
	if err := c.init(); err != nil {
		return nil, err
	}
	decompressed, err := c.decoder.DecodeAll(data, make([]byte, 0, uncompressedSize))
	if err != nil {
		return nil, fmt.Errorf("%w: zstd decompress: %v", core.ErrCompression, err)
	}
	if len(decompressed) != uncompressedSize {
		return nil, fmt.Errorf("%w: zstd produced %d bytes, expected %d", core.ErrCompression, len(decompressed), uncompressedSize)
	}
	return decompressed, nil
}

func (c *ZstdCompressor) Type() core.CompressionType {
	return core.CompressionZstd
}
