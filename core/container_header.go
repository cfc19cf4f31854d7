package core

import (
	"encoding/binary"
	"fmt"
)

// ContainerHeader precedes each compressed batch of records. It is
// immutable once written. SizeCompressed equals the number of bytes
// actually following the header; a container whose compressed and
// uncompressed sizes are equal is stored raw (no compression applied).
type ContainerHeader struct {
	RecordCount      uint32
	SizeCompressed   uint32
	SizeUncompressed uint32
}

// Raw reports whether the container payload is stored uncompressed.
func (h ContainerHeader) Raw() bool {
	return h.SizeCompressed == h.SizeUncompressed
}

// MarshalBinary encodes the container header into ContainerHeaderSize bytes.
func (h ContainerHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, ContainerHeaderSize)
	binary.LittleEndian.PutUint32(b[0:4], h.RecordCount)
	binary.LittleEndian.PutUint32(b[4:8], h.SizeCompressed)
	binary.LittleEndian.PutUint32(b[8:12], h.SizeUncompressed)
	return b, nil
}

// UnmarshalBinary decodes a container header.
func (h *ContainerHeader) UnmarshalBinary(b []byte) error {
	if len(b) < ContainerHeaderSize {
		return fmt.Errorf("%w: container header needs %d bytes, have %d", ErrCorruptContainer, ContainerHeaderSize, len(b))
	}
	h.RecordCount = binary.LittleEndian.Uint32(b[0:4])
	h.SizeCompressed = binary.LittleEndian.Uint32(b[4:8])
	h.SizeUncompressed = binary.LittleEndian.Uint32(b[8:12])
	return nil
}
