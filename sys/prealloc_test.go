package sys

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreallocate(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "prealloc.dat"))
	require.NoError(t, err)
	defer f.Close()

	// Either outcome is acceptable: supported filesystems allocate the
	// blocks, others report the sentinel and callers fall back.
	err = Preallocate(f, 1<<20)
	if err != nil {
		assert.True(t, errors.Is(err, ErrPreallocNotSupported), "unexpected error: %v", err)
	}
}

func TestPreallocateZeroSize(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "prealloc.dat"))
	require.NoError(t, err)
	defer f.Close()

	assert.NoError(t, Preallocate(f, 0))
	assert.NoError(t, Preallocate(f, -1))
}
