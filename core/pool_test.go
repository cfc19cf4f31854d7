package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPoolReuse(t *testing.T) {
	bp := NewBufferPool(128)

	buf := bp.Get()
	require.NotNil(t, buf)
	buf.WriteString("batch data")

	bp.Put(buf)
	again := bp.Get()
	assert.Same(t, buf, again, "LIFO pool hands back the last returned buffer")
	assert.Zero(t, again.Len(), "Put resets the buffer")
	assert.GreaterOrEqual(t, again.Cap(), 10, "capacity survives the round trip")
}

func TestBufferPoolGrowsOnDemand(t *testing.T) {
	bp := NewBufferPool()

	// Drain the prewarmed buffers, then one more.
	var bufs []*bytes.Buffer
	for i := 0; i < 5; i++ {
		bufs = append(bufs, bp.Get())
	}
	require.Len(t, bufs, 5)

	hits, misses, created, size := bp.GetMetrics()
	assert.EqualValues(t, 4, hits)
	assert.EqualValues(t, 1, misses)
	assert.EqualValues(t, 5, created, "4 prewarmed plus 1 on demand")
	assert.EqualValues(t, 0, size)
}
