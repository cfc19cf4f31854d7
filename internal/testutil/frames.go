// Package testutil generates deterministic synthetic telemetry frames
// for tests and the benchmark tool.
package testutil

// Payload returns a deterministic payload of the given size for frame
// seq. The content repeats a short pattern derived from seq, which keeps
// it compressible the way periodic DAQ traffic is.
func Payload(seq, size int) []byte {
	p := make([]byte, size)
	pattern := [4]byte{byte(seq), byte(seq >> 8), 0x55, 0xAA}
	for i := range p {
		p[i] = pattern[i%len(pattern)]
	}
	return p
}

// Timestamps returns n monotonically increasing timestamps spaced by
// step seconds, starting at zero.
func Timestamps(n int, step float64) []float64 {
	ts := make([]float64, n)
	for i := 1; i < n; i++ {
		ts[i] = ts[i-1] + step
	}
	return ts
}
