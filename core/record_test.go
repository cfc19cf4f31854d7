package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		rec  Record
	}{
		{
			name: "daq frame",
			rec:  Record{Category: CategoryDAQ, Counter: 42, Timestamp: 1.25, Payload: []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		},
		{
			name: "empty payload",
			rec:  Record{Category: CategoryEvent, Counter: 0, Timestamp: 0, Payload: nil},
		},
		{
			name: "counter at wrap boundary",
			rec:  Record{Category: CategoryStatus, Counter: 65535, Timestamp: 1e9, Payload: []byte("status")},
		},
		{
			name: "negative timestamp",
			rec:  Record{Category: CategoryDAQ, Counter: 7, Timestamp: -0.5, Payload: []byte{1}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := EncodeRecord(tc.rec)
			require.Equal(t, tc.rec.EncodedSize(), len(encoded))

			decoded, n, err := DecodeRecord(encoded)
			require.NoError(t, err)
			assert.Equal(t, len(encoded), n)
			assert.Equal(t, tc.rec.Category, decoded.Category)
			assert.Equal(t, tc.rec.Counter, decoded.Counter)
			assert.Equal(t, tc.rec.Timestamp, decoded.Timestamp)
			assert.Equal(t, len(tc.rec.Payload), len(decoded.Payload))
			if len(tc.rec.Payload) > 0 {
				assert.Equal(t, tc.rec.Payload, decoded.Payload)
			}
		})
	}
}

func TestDecodeRecordConsumesFromStream(t *testing.T) {
	var buf bytes.Buffer
	recs := []Record{
		{Category: CategoryDAQ, Counter: 1, Timestamp: 0.0, Payload: []byte("aaaa")},
		{Category: CategoryDAQ, Counter: 2, Timestamp: 0.01, Payload: nil},
		{Category: CategoryEvent, Counter: 3, Timestamp: 0.02, Payload: []byte("bbbbbbbb")},
	}
	for _, r := range recs {
		EncodeRecordTo(&buf, r)
	}

	b := buf.Bytes()
	offset := 0
	for i, want := range recs {
		got, n, err := DecodeRecord(b[offset:])
		require.NoError(t, err, "record %d", i)
		assert.Equal(t, want.Counter, got.Counter)
		offset += n
	}
	assert.Equal(t, len(b), offset, "all bytes consumed")
}

func TestDecodeRecordTruncated(t *testing.T) {
	full := EncodeRecord(Record{Category: CategoryDAQ, Counter: 9, Timestamp: 3.5, Payload: []byte("payload")})

	t.Run("ShortPrefix", func(t *testing.T) {
		_, _, err := DecodeRecord(full[:RecordPrefixSize-1])
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTruncatedRecord)
	})

	t.Run("ShortPayload", func(t *testing.T) {
		_, _, err := DecodeRecord(full[:len(full)-1])
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTruncatedRecord)
	})

	t.Run("Empty", func(t *testing.T) {
		_, _, err := DecodeRecord(nil)
		assert.ErrorIs(t, err, ErrTruncatedRecord)
	})
}
