package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHeaderRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		hdr  FileHeader
	}{
		{
			name: "zeroed aggregates",
			hdr:  NewFileHeader(CompressionLZ4),
		},
		{
			name: "populated aggregates",
			hdr: FileHeader{
				HeaderSize:       FileHeaderSize,
				Version:          FormatVersion,
				Options:          uint16(CompressionZstd),
				NumContainers:    17,
				RecordCount:      123456,
				SizeCompressed:   99999,
				SizeUncompressed: 300000,
			},
		},
		{
			name: "snappy scheme",
			hdr: FileHeader{
				HeaderSize:    FileHeaderSize,
				Version:       FormatVersion,
				Options:       uint16(CompressionSnappy),
				NumContainers: 1,
				RecordCount:   1,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := tc.hdr.MarshalBinary()
			require.NoError(t, err)
			require.Len(t, b, FileHeaderSize)

			var decoded FileHeader
			require.NoError(t, decoded.UnmarshalBinary(b))
			assert.Equal(t, tc.hdr, decoded)
		})
	}
}

func TestFileHeaderLayout(t *testing.T) {
	hdr := NewFileHeader(CompressionLZ4)
	b, err := hdr.MarshalBinary()
	require.NoError(t, err)

	assert.Equal(t, []byte(Magic), b[:MagicLen], "magic bytes first, no terminator")
	assert.Equal(t, byte(FileHeaderSize), b[16], "header size little-endian at offset 16")
	assert.Equal(t, byte(0x00), b[18], "version low byte")
	assert.Equal(t, byte(0x01), b[19], "version high byte")
	for i := FileHeaderSize - FileHeaderFillBytes; i < FileHeaderSize; i++ {
		assert.Equal(t, FillByte, b[i], "filler byte at offset %d", i)
	}
}

func TestFileHeaderValidation(t *testing.T) {
	valid, err := NewFileHeader(CompressionLZ4).MarshalBinary()
	require.NoError(t, err)

	t.Run("InvalidMagic", func(t *testing.T) {
		b := append([]byte(nil), valid...)
		b[0] = 'X'
		var hdr FileHeader
		err := hdr.UnmarshalBinary(b)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("UnsupportedVersion", func(t *testing.T) {
		b := append([]byte(nil), valid...)
		b[18] = 0x01
		b[19] = 0x02 // version 0x0201
		var hdr FileHeader
		err := hdr.UnmarshalBinary(b)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("OlderVersionAccepted", func(t *testing.T) {
		b := append([]byte(nil), valid...)
		b[18] = 0xFF
		b[19] = 0x00 // version 0x00FF < 0x0100
		var hdr FileHeader
		assert.NoError(t, hdr.UnmarshalBinary(b))
	})

	t.Run("WrongHeaderSize", func(t *testing.T) {
		b := append([]byte(nil), valid...)
		b[16] = 47
		var hdr FileHeader
		err := hdr.UnmarshalBinary(b)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("ReservedOptionBits", func(t *testing.T) {
		b := append([]byte(nil), valid...)
		b[21] = 0x80
		var hdr FileHeader
		err := hdr.UnmarshalBinary(b)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("ShortBuffer", func(t *testing.T) {
		var hdr FileHeader
		err := hdr.UnmarshalBinary(valid[:20])
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestFileHeaderCompression(t *testing.T) {
	for _, ct := range []CompressionType{CompressionLZ4, CompressionSnappy, CompressionZstd, CompressionNone} {
		hdr := NewFileHeader(ct)
		assert.Equal(t, ct, hdr.Compression())
	}
}
