package recorder

import (
	"fmt"

	"github.com/INLOpen/xmrlog/compressors"
	"github.com/INLOpen/xmrlog/core"
	"github.com/INLOpen/xmrlog/storage"
)

// Reader provides sequential access to a completed recording. The file
// is mapped read-only; multiple Readers may open the same file
// concurrently, each owning its mapping and iteration cursors.
type Reader struct {
	backend storage.Backend
	header  core.FileHeader
	comp    core.Compressor
}

// OpenReader maps the recording at path and validates its header. The
// .xmraw extension is appended if missing.
func OpenReader(path string) (*Reader, error) {
	backend, err := storage.OpenRead(WithExtension(path))
	if err != nil {
		return nil, err
	}
	r, err := NewReader(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return r, nil
}

// NewReader validates the header of an already-opened backend and takes
// ownership of it: Close releases the backend.
func NewReader(backend storage.Backend) (*Reader, error) {
	if backend.Size() < core.FileHeaderSize {
		return nil, fmt.Errorf("%w: file of %d bytes is shorter than the %d byte header",
			core.ErrInvalidFormat, backend.Size(), core.FileHeaderSize)
	}
	b, err := backend.ReadAt(0, core.FileHeaderSize)
	if err != nil {
		return nil, err
	}
	var hdr core.FileHeader
	if err := hdr.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	comp, err := compressors.ForType(hdr.Compression(), 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidFormat, err)
	}
	return &Reader{backend: backend, header: hdr, comp: comp}, nil
}

// Header returns the validated file header.
func (r *Reader) Header() core.FileHeader {
	return r.header
}

// CompressionRatio returns uncompressed/compressed from the file header.
// The second result is false for an empty recording.
func (r *Reader) CompressionRatio() (float64, bool) {
	if r.header.SizeCompressed == 0 {
		return 0, false
	}
	return float64(r.header.SizeUncompressed) / float64(r.header.SizeCompressed), true
}

// Close releases the underlying mapping. Iterators obtained from this
// Reader fail after Close.
func (r *Reader) Close() error {
	return r.backend.Close()
}

// Frames returns a fresh iterator over all records, walking containers
// in file order and decompressing each on demand. Call Frames again to
// restart from the beginning; iterators do not share cursor state and
// must not be used from multiple goroutines.
func (r *Reader) Frames() *FrameIterator {
	return &FrameIterator{
		r:              r,
		offset:         core.FileHeaderSize,
		containersLeft: r.header.NumContainers,
	}
}

// FrameIterator yields records one container at a time.
//
//	it := r.Frames()
//	for it.Next() {
//	    rec := it.Frame()
//	    ...
//	}
//	if err := it.Err(); err != nil { ... }
type FrameIterator struct {
	r              *Reader
	offset         int64
	containersLeft uint32
	records        []core.Record
	idx            int
	cur            core.Record
	err            error
}

// Next advances to the next record. It returns false at the end of the
// recording or on the first error; consult Err afterwards.
func (it *FrameIterator) Next() bool {
	if it.err != nil {
		return false
	}
	for it.idx >= len(it.records) {
		if it.containersLeft == 0 {
			return false
		}
		if !it.loadContainer() {
			return false
		}
	}
	it.cur = it.records[it.idx]
	it.idx++
	return true
}

// Frame returns the current record. Its payload aliases the container's
// decompression buffer and stays valid until the iterator advances into
// the next container; copy it if retained longer.
func (it *FrameIterator) Frame() core.Record {
	return it.cur
}

// Err returns the error that stopped iteration, if any. A corrupt
// container surfaces here at that container, never before: offsets past
// it cannot be trusted, so there is no skip-and-resynchronize.
func (it *FrameIterator) Err() error {
	return it.err
}

func (it *FrameIterator) loadContainer() bool {
	hb, err := it.r.backend.ReadAt(it.offset, core.ContainerHeaderSize)
	if err != nil {
		it.err = fmt.Errorf("%w: container header at offset %d: %w", core.ErrCorruptContainer, it.offset, err)
		return false
	}
	var hdr core.ContainerHeader
	if err := hdr.UnmarshalBinary(hb); err != nil {
		it.err = err
		return false
	}
	data, err := it.r.backend.ReadAt(it.offset+core.ContainerHeaderSize, int64(hdr.SizeCompressed))
	if err != nil {
		it.err = fmt.Errorf("%w: container payload at offset %d: %w", core.ErrCorruptContainer, it.offset, err)
		return false
	}
	records, err := decodeContainer(it.r.comp, hdr, data)
	if err != nil {
		it.err = err
		return false
	}
	it.records = records
	it.idx = 0
	it.offset += core.ContainerHeaderSize + int64(hdr.SizeCompressed)
	it.containersLeft--
	return true
}

// Containers returns an iterator over container headers and their file
// offsets without decompressing payloads. Used by inspection tooling.
func (r *Reader) Containers() *ContainerIterator {
	return &ContainerIterator{
		r:              r,
		offset:         core.FileHeaderSize,
		containersLeft: r.header.NumContainers,
	}
}

// ContainerIterator walks container headers in file order.
type ContainerIterator struct {
	r              *Reader
	offset         int64
	containersLeft uint32
	cur            core.ContainerHeader
	curOffset      int64
	err            error
}

// Next advances to the next container header.
func (it *ContainerIterator) Next() bool {
	if it.err != nil || it.containersLeft == 0 {
		return false
	}
	hb, err := it.r.backend.ReadAt(it.offset, core.ContainerHeaderSize)
	if err != nil {
		it.err = fmt.Errorf("%w: container header at offset %d: %w", core.ErrCorruptContainer, it.offset, err)
		return false
	}
	if err := it.cur.UnmarshalBinary(hb); err != nil {
		it.err = err
		return false
	}
	it.curOffset = it.offset
	it.offset += core.ContainerHeaderSize + int64(it.cur.SizeCompressed)
	it.containersLeft--
	return true
}

// Container returns the current header and its file offset.
func (it *ContainerIterator) Container() (core.ContainerHeader, int64) {
	return it.cur, it.curOffset
}

// Err returns the error that stopped iteration, if any.
func (it *ContainerIterator) Err() error {
	return it.err
}
