package core

// This file centralizes constants related to the .xmraw file format:
// magic bytes, sizes, versions and fill values. All multi-byte fields
// are stored little-endian.

// --- File identification ---
const (
	// FileExtension is the suffix for XCP measurement raw-data recordings.
	FileExtension = ".xmraw"

	// Magic identifies an .xmraw recording. It is stored verbatim, without
	// a terminator, as the first bytes of every file.
	Magic = "ASAMINT::XCP_RAW"

	// MagicLen is the on-disk length of the magic constant.
	MagicLen = len(Magic)
)

// --- Format versions ---
const (
	// FormatVersion is the current file format version (0x0100 = v1.0).
	// A reader rejects files whose version exceeds this value.
	FormatVersion uint16 = 0x0100
)

// --- Layout sizes ---
const (
	// FileHeaderSize is the fixed size of the file header at offset 0.
	FileHeaderSize = 48

	// FileHeaderFillBytes is the number of reserved bytes at the end of
	// the file header, each set to FillByte.
	FileHeaderFillBytes = 10

	// ContainerHeaderSize is the fixed size of the header preceding each
	// compressed container.
	ContainerHeaderSize = 12

	// RecordPrefixSize is the fixed part of an encoded record:
	// category(1) + counter(2) + timestamp(8) + payload length(4).
	RecordPrefixSize = 15
)

// FillByte is the value written to unused/reserved bytes.
const FillByte byte = 0xCC

// OptionsCompressionMask selects the compression scheme bits of the
// FileHeader options field. The remaining bits are reserved and must be
// zero. Files produced by the reference recorder carry options 0, which
// maps to LZ4 block compression.
const OptionsCompressionMask uint16 = 0x0003
