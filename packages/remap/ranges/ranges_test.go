package ranges

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRangeUnsafe(first, last uint64) Range {
	return Range{start: first, end: last + 1}
}

func TestRanges(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		var r Ranges
		require.NoError(t, r.UnmarshalText([]byte("79-92,55-67")))
		assert.Equal(t, Ranges{newRangeUnsafe(79, 92), newRangeUnsafe(55, 67)}, r)
	})

	t.Run("parse single", func(t *testing.T) {
		var r Range
		require.NoError(t, r.UnmarshalText([]byte("7")))
		assert.Equal(t, newRangeUnsafe(7, 7), r)
		assert.EqualValues(t, 1, r.Len())
	})

	t.Run("parse invalid", func(t *testing.T) {
		cases := []string{"10-1", "a-b", "1-2-3", "-5", "1-18446744073709551615"}
		for _, c := range cases {
			var r Range
			assert.ErrorIs(t, r.UnmarshalText([]byte(c)), ErrInvalidRange, c)
		}
	})

	t.Run("marshal", func(t *testing.T) {
		rngs := Ranges{newRangeUnsafe(79, 92), {}, newRangeUnsafe(55, 67)}
		buf, err := rngs.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, "79-92,,55-67", string(buf))

		var back Ranges
		require.NoError(t, back.UnmarshalText(buf))
		assert.Equal(t, rngs, back)
	})

	t.Run("from length", func(t *testing.T) {
		type testCase struct {
			start, length uint64
			expected      Range
			err           bool
		}

		cases := []testCase{
			{start: 79, length: 14, expected: newRangeUnsafe(79, 92)},
			{start: 5, length: 0, expected: Range{}},
			{start: math.MaxUint64 - 1, length: 1, expected: newRangeUnsafe(math.MaxUint64-1, math.MaxUint64-1)},
			{start: math.MaxUint64, length: 1, err: true},
			{start: 1 << 63, length: 1 << 63, err: true},
		}

		for _, c := range cases {
			rng, err := FromLength(c.start, c.length)
			if c.err {
				assert.ErrorIs(t, err, ErrInvalidRange)
				continue
			}
			require.NoError(t, err)
			assert.Equal(t, c.expected, rng)
		}
	})

	t.Run("contains", func(t *testing.T) {
		rng, err := FromLength(97, 3)
		require.NoError(t, err)
		assert.False(t, rng.Contains(96))
		assert.True(t, rng.Contains(97))
		assert.True(t, rng.Contains(99))
		assert.False(t, rng.Contains(100))
	})

	t.Run("len and enumerate", func(t *testing.T) {
		rngs := Ranges{newRangeUnsafe(1, 3), {}, newRangeUnsafe(10, 11)}
		assert.EqualValues(t, 5, rngs.Len())
		assert.Equal(t, Ranges{newRangeUnsafe(1, 3), newRangeUnsafe(10, 11)}, rngs.NonEmpty())
		assert.Equal(t, []uint64{1, 2, 3, 10, 11}, rngs.AsIntSlice())
	})
}
