package core

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// RecordCategory is a small tag distinguishing frame kinds.
type RecordCategory byte

const (
	// CategoryDAQ marks a periodic data-acquisition frame.
	CategoryDAQ RecordCategory = 1
	// CategoryEvent marks an asynchronous event frame.
	CategoryEvent RecordCategory = 2
	// CategoryStatus marks a status/service frame.
	CategoryStatus RecordCategory = 3
)

// Record is one captured protocol frame. The payload is opaque to this
// layer; its semantics belong to the protocol client that produced it.
type Record struct {
	Category  RecordCategory
	Counter   uint16
	Timestamp float64 // seconds, monotonic within a recording
	Payload   []byte
}

// EncodedSize returns the on-disk length of the record.
func (r *Record) EncodedSize() int {
	return RecordPrefixSize + len(r.Payload)
}

// EncodeRecordTo appends the wire form of r to buf:
// category(1) counter(2) timestamp(8, IEEE-754 double) payloadLen(4) payload.
func EncodeRecordTo(buf *bytes.Buffer, r Record) {
	var prefix [RecordPrefixSize]byte
	prefix[0] = byte(r.Category)
	binary.LittleEndian.PutUint16(prefix[1:3], r.Counter)
	binary.LittleEndian.PutUint64(prefix[3:11], math.Float64bits(r.Timestamp))
	binary.LittleEndian.PutUint32(prefix[11:15], uint32(len(r.Payload)))
	buf.Write(prefix[:])
	buf.Write(r.Payload)
}

// EncodeRecord returns the wire form of r as a fresh slice.
func EncodeRecord(r Record) []byte {
	var buf bytes.Buffer
	buf.Grow(r.EncodedSize())
	EncodeRecordTo(&buf, r)
	return buf.Bytes()
}

// DecodeRecord decodes one record from the start of b and reports the
// number of bytes consumed. The returned payload aliases b; callers that
// retain it past the lifetime of b must copy. Payload content is not
// validated, it is opaque at this layer.
func DecodeRecord(b []byte) (Record, int, error) {
	if len(b) < RecordPrefixSize {
		return Record{}, 0, fmt.Errorf("%w: need %d prefix bytes, have %d", ErrTruncatedRecord, RecordPrefixSize, len(b))
	}
	payloadLen := binary.LittleEndian.Uint32(b[11:15])
	total := RecordPrefixSize + int(payloadLen)
	if len(b) < total {
		return Record{}, 0, fmt.Errorf("%w: need %d payload bytes, have %d", ErrTruncatedRecord, payloadLen, len(b)-RecordPrefixSize)
	}
	rec := Record{
		Category:  RecordCategory(b[0]),
		Counter:   binary.LittleEndian.Uint16(b[1:3]),
		Timestamp: math.Float64frombits(binary.LittleEndian.Uint64(b[3:11])),
		Payload:   b[RecordPrefixSize:total],
	}
	return rec, total, nil
}
