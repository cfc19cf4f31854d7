package compressors

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/INLOpen/xmrlog/core"
)

func TestForType(t *testing.T) {
	for _, ct := range []core.CompressionType{
		core.CompressionLZ4,
		core.CompressionSnappy,
		core.CompressionZstd,
		core.CompressionNone,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			c, err := ForType(ct, 0)
			require.NoError(t, err)
			assert.Equal(t, ct, c.Type())
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := ForType(core.CompressionType(42), 0)
		assert.Error(t, err)
	})
}

func TestAllSchemesRoundTrip(t *testing.T) {
	inputs := []struct {
		name string
		data []byte
	}{
		{"repetitive", bytes.Repeat([]byte("frame-data-"), 1000)},
		{"short", []byte("x")},
		{"binary", []byte{0x00, 0xFF, 0x10, 0x20, 0x30, 0x40, 0x00, 0x00, 0x00}},
	}

	for _, ct := range []core.CompressionType{
		core.CompressionLZ4,
		core.CompressionSnappy,
		core.CompressionZstd,
		core.CompressionNone,
	} {
		c, err := ForType(ct, 0)
		require.NoError(t, err)
		for _, in := range inputs {
			t.Run(ct.String()+"/"+in.name, func(t *testing.T) {
				compressed, err := c.Compress(in.data)
				require.NoError(t, err)
				if len(compressed) == 0 && len(in.data) > 0 {
					// Incompressible signal; callers store such data raw.
					t.Skip("scheme reported input incompressible")
				}
				decompressed, err := c.Decompress(compressed, len(in.data))
				require.NoError(t, err)
				assert.Equal(t, in.data, decompressed)
			})
		}
	}
}

func TestSizeMismatchDetected(t *testing.T) {
	data := bytes.Repeat([]byte("measurement"), 256)
	for _, ct := range []core.CompressionType{
		core.CompressionSnappy,
		core.CompressionZstd,
		core.CompressionNone,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			c, err := ForType(ct, 0)
			require.NoError(t, err)
			compressed, err := c.Compress(data)
			require.NoError(t, err)
			_, err = c.Decompress(compressed, len(data)+1)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrCompression)
		})
	}
}
