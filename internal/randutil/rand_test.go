package randutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewIsDeterministic(t *testing.T) {
	t.Parallel()
	a, b := New(42), New(42)
	for i := 0; i < 16; i++ {
		require.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestForRoomSeparatesStreams(t *testing.T) {
	t.Parallel()
	a, b := ForRoom(42, 1), ForRoom(42, 2)
	same := true
	for i := 0; i < 16; i++ {
		if a.Uint64() != b.Uint64() {
			same = false
		}
	}
	require.False(t, same, "consecutive rooms must not share a stream")

	c, d := ForRoom(42, 1), ForRoom(42, 1)
	require.Equal(t, c.Uint64(), d.Uint64())
}
