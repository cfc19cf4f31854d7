// xmrbench writes synthetic DAQ frames through the recorder and reports
// throughput and compression figures, then re-reads the file to verify
// the frame count.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/INLOpen/xmrlog/config"
	"github.com/INLOpen/xmrlog/core"
	"github.com/INLOpen/xmrlog/internal/testutil"
	"github.com/INLOpen/xmrlog/recorder"
)

func main() {
	var (
		configPath  string
		out         string
		frames      int
		payloadSize int
		compression string
	)
	flag.StringVar(&configPath, "config", "", "optional YAML config path")
	flag.StringVar(&out, "out", "xmrbench", "output recording path")
	flag.IntVar(&frames, "frames", 100000, "number of frames to write")
	flag.IntVar(&payloadSize, "payload", 64, "payload bytes per frame")
	flag.StringVar(&compression, "compression", "", "override compression scheme")
	flag.Parse()

	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	if compression != "" {
		cfg.Recorder.Compression = compression
		if err := cfg.Validate(); err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	logger, logCloser, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logCloser.Close()

	w, err := recorder.NewWriter(out, recorder.Options{
		PreallocBytes:    cfg.Recorder.PreallocBytes,
		ChunkSize:        cfg.Recorder.ChunkSizeBytes,
		Compression:      cfg.Recorder.CompressionType(),
		CompressionLevel: cfg.Recorder.CompressionLevel,
		SyncOnFlush:      cfg.Recorder.SyncOnFlush,
		Logger:           logger,
	})
	if err != nil {
		log.Fatalf("create recording: %v", err)
	}

	start := time.Now()
	for i := 0; i < frames; i++ {
		ts := float64(i) * 0.001
		if err := w.Append(core.CategoryDAQ, ts, testutil.Payload(i, payloadSize)); err != nil {
			log.Fatalf("append frame %d: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		log.Fatalf("close recording: %v", err)
	}
	elapsed := time.Since(start)

	hdr := w.Header()
	fmt.Printf("frames:            %d\n", frames)
	fmt.Printf("elapsed:           %s\n", elapsed)
	fmt.Printf("frames/sec:        %.0f\n", float64(frames)/elapsed.Seconds())
	fmt.Printf("containers:        %d\n", hdr.NumContainers)
	fmt.Printf("bytes on disk:     %d\n", hdr.SizeCompressed)
	if ratio, ok := w.CompressionRatio(); ok {
		fmt.Printf("compression ratio: %.2f\n", ratio)
	}

	r, err := recorder.OpenReader(out)
	if err != nil {
		log.Fatalf("reopen: %v", err)
	}
	defer r.Close()
	count := 0
	it := r.Frames()
	for it.Next() {
		count++
	}
	if err := it.Err(); err != nil {
		log.Fatalf("verify walk: %v", err)
	}
	if count != frames {
		log.Fatalf("verification failed: wrote %d frames, read back %d", frames, count)
	}
	fmt.Printf("verified:          %d frames read back\n", count)
}
