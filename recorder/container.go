package recorder

import (
	"fmt"

	"github.com/INLOpen/xmrlog/core"
)

// encodeContainer compresses a batch of already-encoded records and
// builds its header. If the compressor reports the batch incompressible
// (zero-length output) or produces no gain, the batch is stored raw;
// readers detect that by SizeCompressed == SizeUncompressed.
func encodeContainer(comp core.Compressor, batch []byte, recordCount uint32) (core.ContainerHeader, []byte, error) {
	compressed, err := comp.Compress(batch)
	if err != nil {
		return core.ContainerHeader{}, nil, err
	}
	if len(compressed) == 0 || len(compressed) >= len(batch) {
		compressed = batch
	}
	hdr := core.ContainerHeader{
		RecordCount:      recordCount,
		SizeCompressed:   uint32(len(compressed)),
		SizeUncompressed: uint32(len(batch)),
	}
	return hdr, compressed, nil
}

// decodeContainer decompresses a container payload and decodes exactly
// hdr.RecordCount records from it. Payloads of the returned records
// alias the decompressed buffer.
func decodeContainer(comp core.Compressor, hdr core.ContainerHeader, data []byte) ([]core.Record, error) {
	if uint32(len(data)) != hdr.SizeCompressed {
		return nil, fmt.Errorf("%w: %d payload bytes on disk, header declares %d", core.ErrCorruptContainer, len(data), hdr.SizeCompressed)
	}
	raw := data
	if !hdr.Raw() {
		var err error
		raw, err = comp.Decompress(data, int(hdr.SizeUncompressed))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrCorruptContainer, err)
		}
	}
	records := make([]core.Record, 0, hdr.RecordCount)
	offset := 0
	for i := uint32(0); i < hdr.RecordCount; i++ {
		rec, n, err := core.DecodeRecord(raw[offset:])
		if err != nil {
			return nil, fmt.Errorf("%w: record %d of %d: %w", core.ErrCorruptContainer, i, hdr.RecordCount, err)
		}
		records = append(records, rec)
		offset += n
	}
	return records, nil
}
