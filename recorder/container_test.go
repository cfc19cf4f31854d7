package recorder

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/INLOpen/xmrlog/compressors"
	"github.com/INLOpen/xmrlog/core"
)

func encodeBatch(t *testing.T, recs []core.Record) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, r := range recs {
		core.EncodeRecordTo(&buf, r)
	}
	return buf.Bytes()
}

func TestContainerRoundTrip(t *testing.T) {
	recs := []core.Record{
		{Category: core.CategoryDAQ, Counter: 0, Timestamp: 0.0, Payload: bytes.Repeat([]byte{0x11}, 64)},
		{Category: core.CategoryEvent, Counter: 1, Timestamp: 0.01, Payload: nil},
		{Category: core.CategoryDAQ, Counter: 2, Timestamp: 0.02, Payload: bytes.Repeat([]byte{0x22}, 128)},
	}
	batch := encodeBatch(t, recs)

	for _, ct := range []core.CompressionType{
		core.CompressionLZ4,
		core.CompressionSnappy,
		core.CompressionZstd,
		core.CompressionNone,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			comp, err := compressors.ForType(ct, 0)
			require.NoError(t, err)

			hdr, data, err := encodeContainer(comp, batch, uint32(len(recs)))
			require.NoError(t, err)
			assert.EqualValues(t, len(recs), hdr.RecordCount)
			assert.EqualValues(t, len(batch), hdr.SizeUncompressed)
			assert.EqualValues(t, len(data), hdr.SizeCompressed)

			decoded, err := decodeContainer(comp, hdr, data)
			require.NoError(t, err)
			require.Len(t, decoded, len(recs))
			for i, want := range recs {
				assert.Equal(t, want.Category, decoded[i].Category)
				assert.Equal(t, want.Counter, decoded[i].Counter)
				assert.Equal(t, want.Timestamp, decoded[i].Timestamp)
				assert.Equal(t, len(want.Payload), len(decoded[i].Payload))
			}
		})
	}
}

func TestContainerRawFallback(t *testing.T) {
	// Random payloads do not compress; the container must be stored raw
	// and still round-trip.
	payload := make([]byte, 256)
	_, err := rand.Read(payload)
	require.NoError(t, err)
	recs := []core.Record{{Category: core.CategoryDAQ, Counter: 5, Timestamp: 1.5, Payload: payload}}
	batch := encodeBatch(t, recs)

	comp, err := compressors.ForType(core.CompressionLZ4, 0)
	require.NoError(t, err)

	hdr, data, err := encodeContainer(comp, batch, 1)
	require.NoError(t, err)
	assert.True(t, hdr.Raw(), "incompressible batch stored raw")
	assert.Equal(t, batch, data)

	decoded, err := decodeContainer(comp, hdr, data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, payload, decoded[0].Payload)
}

func TestDecodeContainerSizeMismatch(t *testing.T) {
	comp, err := compressors.ForType(core.CompressionLZ4, 0)
	require.NoError(t, err)
	batch := encodeBatch(t, []core.Record{{Category: core.CategoryDAQ, Payload: bytes.Repeat([]byte{9}, 300)}})
	hdr, data, err := encodeContainer(comp, batch, 1)
	require.NoError(t, err)

	t.Run("ShortPayload", func(t *testing.T) {
		_, err := decodeContainer(comp, hdr, data[:len(data)-1])
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrCorruptContainer)
	})

	t.Run("DeclaredSizeOff", func(t *testing.T) {
		bad := hdr
		bad.SizeCompressed--
		_, err := decodeContainer(comp, bad, data[:len(data)-1])
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrCorruptContainer)
	})

	t.Run("RecordCountTooHigh", func(t *testing.T) {
		bad := hdr
		bad.RecordCount = 2
		_, err := decodeContainer(comp, bad, data)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrCorruptContainer)
		assert.ErrorIs(t, err, core.ErrTruncatedRecord)
	})
}
