package recorder

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/INLOpen/xmrlog/compressors"
	"github.com/INLOpen/xmrlog/core"
	"github.com/INLOpen/xmrlog/storage"
)

const (
	// DefaultChunkSize is the batch threshold that triggers a container
	// flush.
	DefaultChunkSize = 1024 * 1024

	// DefaultPreallocBytes is the initial sparse-file preallocation.
	DefaultPreallocBytes = 10 * 1024 * 1024
)

// Options configures a Writer. The zero value selects LZ4 compression at
// the recorder default level, a 1 MiB chunk threshold and a 10 MiB
// preallocation.
type Options struct {
	// PreallocBytes is the initial backing-store capacity.
	PreallocBytes int64
	// ChunkSize is the uncompressed batch size that triggers a container
	// flush.
	ChunkSize int
	// Compression selects the block compression scheme for the file.
	Compression core.CompressionType
	// CompressionLevel tunes LZ4 (1-9); 0 keeps the default.
	CompressionLevel int
	// SyncOnFlush forces durability after every container flush instead
	// of only at Close.
	SyncOnFlush bool
	// Logger receives structured diagnostics; nil selects slog.Default.
	Logger *slog.Logger
	// Tracer enables optional tracing of flushes; nil disables.
	Tracer trace.Tracer
	// Backend overrides the mmap file backend; used by tests and
	// in-memory recordings. When set, the path argument is ignored.
	Backend storage.Backend
}

// Writer accumulates records into an in-memory batch and flushes them as
// compressed containers. The file header is rewritten after every flush
// and always after the container it describes, so an abrupt termination
// loses at most the unflushed tail, never the head.
//
// A Writer is the sole mutator of its file. Concurrent writers on one
// path are a caller-enforced invariant.
type Writer struct {
	mu      sync.Mutex
	backend storage.Backend
	comp    core.Compressor
	logger  *slog.Logger
	tracer  trace.Tracer

	chunkSize   int
	syncOnFlush bool

	batch         *bytes.Buffer // leased from core.BufferPool for the session
	batchRecords  uint32
	counter       uint16
	lastTimestamp float64

	header core.FileHeader
	offset int64 // next container write offset
	closed bool
}

// NewWriter creates a recording at path. The .xmraw extension is
// appended if missing, and an existing file at the path is overwritten.
// The header is written immediately with zeroed aggregates; a file whose
// header was never rewritten afterwards reads as an empty recording.
func NewWriter(path string, opts Options) (*Writer, error) {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.PreallocBytes <= 0 {
		opts.PreallocBytes = DefaultPreallocBytes
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	comp, err := compressors.ForType(opts.Compression, opts.CompressionLevel)
	if err != nil {
		return nil, err
	}

	backend := opts.Backend
	if backend == nil {
		backend, err = storage.Create(WithExtension(path), opts.PreallocBytes)
		if err != nil {
			return nil, err
		}
	}

	w := &Writer{
		backend:     backend,
		batch:       core.BufferPool.Get(),
		comp:        comp,
		logger:      opts.Logger,
		tracer:      opts.Tracer,
		chunkSize:   opts.ChunkSize,
		syncOnFlush: opts.SyncOnFlush,
		header:      core.NewFileHeader(comp.Type()),
		offset:      core.FileHeaderSize,
	}
	if err := w.writeHeader(); err != nil {
		core.BufferPool.Put(w.batch)
		backend.Close()
		return nil, err
	}
	return w, nil
}

// WithExtension appends the .xmraw suffix to path unless already present.
func WithExtension(path string) string {
	if strings.HasSuffix(path, core.FileExtension) {
		return path
	}
	return path + core.FileExtension
}

// Append records one frame. The sequence counter is assigned internally
// and wraps at its 16-bit storage width. If the batch reaches the chunk
// threshold the batch is flushed as a new container before returning.
func (w *Writer) Append(category core.RecordCategory, timestamp float64, payload []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return os.ErrClosed
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return fmt.Errorf("payload of %d bytes exceeds the length field width", len(payload))
	}
	if timestamp < w.lastTimestamp {
		w.logger.Warn("timestamp regression in recording",
			"timestamp", timestamp, "previous", w.lastTimestamp, "counter", w.counter)
	}
	rec := core.Record{
		Category:  category,
		Counter:   w.counter,
		Timestamp: timestamp,
		Payload:   payload,
	}
	w.counter++ // wraps at 65535
	w.lastTimestamp = timestamp
	core.EncodeRecordTo(w.batch, rec)
	w.batchRecords++

	if w.batch.Len() >= w.chunkSize {
		return w.flushBatch(context.Background())
	}
	return nil
}

// flushBatch compresses the current batch, appends it as a container and
// rewrites the file header. Caller holds w.mu.
func (w *Writer) flushBatch(ctx context.Context) error {
	if w.batchRecords == 0 {
		return nil
	}
	var span trace.Span
	if w.tracer != nil {
		_, span = w.tracer.Start(ctx, "recorder.Writer.flushBatch")
		defer span.End()
	}

	hdr, data, err := encodeContainer(w.comp, w.batch.Bytes(), w.batchRecords)
	if err != nil {
		w.logger.Error("container compression failed", "error", err)
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}

	end := w.offset + core.ContainerHeaderSize + int64(len(data))
	if err := w.backend.EnsureCapacity(end); err != nil {
		return err
	}
	// Container payload first, then its header, then the file header.
	// The file header must describe only durably placed containers.
	if err := w.backend.WriteAt(w.offset+core.ContainerHeaderSize, data); err != nil {
		return err
	}
	hdrBytes, _ := hdr.MarshalBinary()
	if err := w.backend.WriteAt(w.offset, hdrBytes); err != nil {
		return err
	}

	w.offset = end
	w.header.NumContainers++
	w.header.RecordCount += hdr.RecordCount
	w.header.SizeCompressed += hdr.SizeCompressed
	w.header.SizeUncompressed += hdr.SizeUncompressed
	if err := w.writeHeader(); err != nil {
		return err
	}
	if w.syncOnFlush {
		if err := w.backend.Flush(); err != nil {
			return err
		}
	}

	if span != nil {
		span.SetAttributes(
			attribute.Int("container.records", int(hdr.RecordCount)),
			attribute.Int("container.size_compressed", int(hdr.SizeCompressed)),
			attribute.Int("container.size_uncompressed", int(hdr.SizeUncompressed)),
			attribute.Int64("container.end_offset", w.offset),
		)
	}
	w.logger.Debug("flushed container",
		"records", hdr.RecordCount,
		"size_compressed", hdr.SizeCompressed,
		"size_uncompressed", hdr.SizeUncompressed,
		"containers", w.header.NumContainers)

	w.batch.Reset()
	w.batchRecords = 0
	return nil
}

func (w *Writer) writeHeader() error {
	b, _ := w.header.MarshalBinary()
	return w.backend.WriteAt(0, b)
}

// Close flushes any partial batch as a final container, rewrites the
// header, truncates the backing store to the end-of-data offset and
// releases it. A second Close is a no-op.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	flushErr := w.flushBatch(context.Background())
	if flushErr == nil {
		flushErr = w.backend.Flush()
	}
	if flushErr == nil {
		flushErr = w.backend.TruncateTo(w.offset)
	}
	closeErr := w.backend.Close()
	core.BufferPool.Put(w.batch)
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Header returns a snapshot of the current file-level aggregates.
func (w *Writer) Header() core.FileHeader {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.header
}

// CompressionRatio returns uncompressed/compressed over all flushed
// containers. The second result is false while nothing was compressed.
func (w *Writer) CompressionRatio() (float64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.header.SizeCompressed == 0 {
		return 0, false
	}
	return float64(w.header.SizeUncompressed) / float64(w.header.SizeCompressed), true
}
