// xmrdump inspects .xmraw recordings: file header, per-container stats
// and optionally the decoded frames.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/INLOpen/xmrlog/core"
	"github.com/INLOpen/xmrlog/recorder"
)

func main() {
	var (
		file       string
		dumpFrames bool
		limit      int
		containers bool
	)
	flag.StringVar(&file, "file", "", "recording path (.xmraw appended if missing)")
	flag.BoolVar(&dumpFrames, "frames", false, "dump decoded frames")
	flag.IntVar(&limit, "limit", 0, "stop after this many frames (0 = all)")
	flag.BoolVar(&containers, "containers", false, "list per-container stats")
	flag.Parse()
	if file == "" {
		log.Fatal("provide -file")
	}

	r, err := recorder.OpenReader(file)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidMagic):
			log.Fatalf("%s is not an .xmraw recording: %v", file, err)
		case errors.Is(err, core.ErrUnsupportedVersion):
			log.Fatalf("%s was written by a newer recorder: %v", file, err)
		default:
			log.Fatalf("open failed: %v", err)
		}
	}
	defer r.Close()

	hdr := r.Header()
	fmt.Printf("version:            0x%04x\n", hdr.Version)
	fmt.Printf("compression:        %s\n", hdr.Compression())
	fmt.Printf("containers:         %d\n", hdr.NumContainers)
	fmt.Printf("records:            %d\n", hdr.RecordCount)
	fmt.Printf("size compressed:    %d\n", hdr.SizeCompressed)
	fmt.Printf("size uncompressed:  %d\n", hdr.SizeUncompressed)
	if ratio, ok := r.CompressionRatio(); ok {
		fmt.Printf("compression ratio:  %.2f\n", ratio)
	} else {
		fmt.Printf("compression ratio:  n/a\n")
	}

	if containers {
		it := r.Containers()
		for i := 0; it.Next(); i++ {
			ch, off := it.Container()
			fmt.Printf("container %03d: offset=%d records=%d compressed=%d uncompressed=%d raw=%v\n",
				i, off, ch.RecordCount, ch.SizeCompressed, ch.SizeUncompressed, ch.Raw())
		}
		if err := it.Err(); err != nil {
			log.Fatalf("container walk failed: %v", err)
		}
	}

	if dumpFrames {
		it := r.Frames()
		n := 0
		for it.Next() {
			rec := it.Frame()
			fmt.Printf("%08d: category=%d counter=%d timestamp=%.6f payload_len=%d\n",
				n, rec.Category, rec.Counter, rec.Timestamp, len(rec.Payload))
			n++
			if limit > 0 && n >= limit {
				break
			}
		}
		if err := it.Err(); err != nil {
			if errors.Is(err, core.ErrCorruptContainer) {
				log.Printf("recording is damaged after %d frames: %v", n, err)
				os.Exit(1)
			}
			log.Fatalf("frame walk failed: %v", err)
		}
	}
}
