package worklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suremarc/go-almanac/packages/remap/ranges"
)

func TestWorklist(t *testing.T) {
	seed, err := ranges.FromLength(79, 14)
	require.NoError(t, err)

	t.Run("lifo", func(t *testing.T) {
		w := New(seed)
		assert.Equal(t, 1, w.Len())

		item, ok := w.Pop()
		require.True(t, ok)
		assert.Equal(t, Item{Start: 79, Len: 14}, item)

		w.Push(85)
		w.Push(90)
		assert.Equal(t, 2, w.Len())

		item, ok = w.Pop()
		require.True(t, ok)
		assert.Equal(t, Item{Start: 90, Len: 3}, item)

		item, ok = w.Pop()
		require.True(t, ok)
		assert.Equal(t, Item{Start: 85, Len: 8}, item)

		_, ok = w.Pop()
		assert.False(t, ok)
		assert.Zero(t, w.Len())
	})

	t.Run("empty seed range", func(t *testing.T) {
		w := New(ranges.Range{})
		_, ok := w.Pop()
		assert.False(t, ok)
	})

	t.Run("push outside", func(t *testing.T) {
		w := New(seed)
		assert.Panics(t, func() { w.Push(79) })
		assert.Panics(t, func() { w.Push(93) })
		assert.Panics(t, func() { w.Push(10) })
		assert.NotPanics(t, func() { w.Push(92) })
	})
}
