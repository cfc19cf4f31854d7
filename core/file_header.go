package core

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// FileHeader is the 48-byte header at offset 0 of every recording. It is
// mutable on disk: the writer rewrites it after every container flush so
// the file stays self-consistent if the process terminates between
// containers. The magic bytes are fixed and therefore not a field.
type FileHeader struct {
	HeaderSize       uint16
	Version          uint16
	Options          uint16
	NumContainers    uint32
	RecordCount      uint32
	SizeCompressed   uint32
	SizeUncompressed uint32
}

// NewFileHeader creates a header with zeroed aggregates for the given
// compression scheme.
func NewFileHeader(compression CompressionType) FileHeader {
	return FileHeader{
		HeaderSize: FileHeaderSize,
		Version:    FormatVersion,
		Options:    uint16(compression) & OptionsCompressionMask,
	}
}

// Compression returns the compression scheme encoded in the options field.
func (h FileHeader) Compression() CompressionType {
	return CompressionType(h.Options & OptionsCompressionMask)
}

// MarshalBinary encodes the header into exactly FileHeaderSize bytes:
// magic(16) hdrSize(2) version(2) options(2) numContainers(4)
// recordCount(4) sizeCompressed(4) sizeUncompressed(4) filler(10).
func (h FileHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, FileHeaderSize)
	copy(b[:MagicLen], Magic)
	binary.LittleEndian.PutUint16(b[16:18], h.HeaderSize)
	binary.LittleEndian.PutUint16(b[18:20], h.Version)
	binary.LittleEndian.PutUint16(b[20:22], h.Options)
	binary.LittleEndian.PutUint32(b[22:26], h.NumContainers)
	binary.LittleEndian.PutUint32(b[26:30], h.RecordCount)
	binary.LittleEndian.PutUint32(b[30:34], h.SizeCompressed)
	binary.LittleEndian.PutUint32(b[34:38], h.SizeUncompressed)
	for i := FileHeaderSize - FileHeaderFillBytes; i < FileHeaderSize; i++ {
		b[i] = FillByte
	}
	return b, nil
}

// UnmarshalBinary decodes and validates a file header.
func (h *FileHeader) UnmarshalBinary(b []byte) error {
	if len(b) < FileHeaderSize {
		return fmt.Errorf("%w: file shorter than header (%d bytes)", ErrInvalidFormat, len(b))
	}
	if !bytes.Equal(b[:MagicLen], []byte(Magic)) {
		return fmt.Errorf("%w: got %q", ErrInvalidMagic, b[:MagicLen])
	}
	h.HeaderSize = binary.LittleEndian.Uint16(b[16:18])
	h.Version = binary.LittleEndian.Uint16(b[18:20])
	h.Options = binary.LittleEndian.Uint16(b[20:22])
	h.NumContainers = binary.LittleEndian.Uint32(b[22:26])
	h.RecordCount = binary.LittleEndian.Uint32(b[26:30])
	h.SizeCompressed = binary.LittleEndian.Uint32(b[30:34])
	h.SizeUncompressed = binary.LittleEndian.Uint32(b[34:38])
	if h.HeaderSize != FileHeaderSize {
		return fmt.Errorf("%w: declared header size %d, want %d", ErrInvalidFormat, h.HeaderSize, FileHeaderSize)
	}
	if h.Version > FormatVersion {
		return fmt.Errorf("%w: file version 0x%04x, newest supported 0x%04x", ErrUnsupportedVersion, h.Version, FormatVersion)
	}
	if h.Options&^OptionsCompressionMask != 0 {
		return fmt.Errorf("%w: reserved option bits set (0x%04x)", ErrInvalidFormat, h.Options)
	}
	return nil
}
