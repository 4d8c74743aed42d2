package almanac

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suremarc/go-almanac/packages/remap/ranges"
	"github.com/suremarc/go-almanac/packages/remap/solver"
	"github.com/suremarc/go-almanac/packages/remap/stage"
)

const sample = `seeds: 79 14 55 13

seed-to-soil map:
50 98 2
52 50 48

soil-to-fertilizer map:
0 15 37
37 52 2
39 0 15

fertilizer-to-water map:
49 53 8
0 11 42
42 0 7
57 7 4

water-to-light map:
88 18 7
18 25 70

light-to-temperature map:
45 77 23
81 45 19
68 64 13

temperature-to-humidity map:
0 69 1
1 0 69

humidity-to-location map:
60 56 37
56 93 4
`

func TestParse(t *testing.T) {
	t.Run("sample", func(t *testing.T) {
		a, err := Parse(strings.NewReader(sample))
		require.NoError(t, err)

		assert.Equal(t, []uint64{79, 14, 55, 13}, a.Seeds)
		require.Len(t, a.Stages, 7)
		assert.Equal(t, "seed-to-soil", a.Stages[0].Name)
		assert.Equal(t, []stage.Rule{{Dest: 50, Source: 98, Len: 2}, {Dest: 52, Source: 50, Len: 48}}, a.Stages[0].Rules)
		assert.Equal(t, "humidity-to-location", a.Stages[6].Name)

		rngs, err := a.SeedRanges()
		require.NoError(t, err)
		first, err := ranges.NewRange(79, 92)
		require.NoError(t, err)
		second, err := ranges.NewRange(55, 67)
		require.NoError(t, err)
		assert.Equal(t, ranges.Ranges{first, second}, rngs)
	})

	t.Run("crlf and extra blank lines", func(t *testing.T) {
		input := "\r\nseeds: 1 2\r\n\r\n\r\na-to-b map:\r\n5 6 7\r\n"
		a, err := Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, []uint64{1, 2}, a.Seeds)
		require.Len(t, a.Stages, 1)
		assert.Equal(t, []stage.Rule{{Dest: 5, Source: 6, Len: 7}}, a.Stages[0].Rules)
	})

	t.Run("empty map block", func(t *testing.T) {
		a, err := Parse(strings.NewReader("seeds: 1\n\na-to-b map:\n\nb-to-c map:\n1 2 3\n"))
		require.NoError(t, err)
		require.Len(t, a.Stages, 2)
		assert.Empty(t, a.Stages[0].Rules)
	})

	t.Run("malformed", func(t *testing.T) {
		type testCase struct {
			name  string
			input string
			line  string
		}

		cases := []testCase{
			{name: "no seeds", input: "a-to-b map:\n1 2 3\n"},
			{name: "bad seed", input: "seeds: 1 x\n", line: "line 1"},
			{name: "duplicate seeds", input: "seeds: 1\nseeds: 2\n", line: "line 2"},
			{name: "rule outside block", input: "seeds: 1\n\n1 2 3\n", line: "line 3"},
			{name: "short rule", input: "seeds: 1\n\na-to-b map:\n1 2\n", line: "line 4"},
			{name: "negative", input: "seeds: 1\n\na-to-b map:\n1 -2 3\n", line: "line 4"},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				_, err := Parse(strings.NewReader(c.input))
				require.ErrorIs(t, err, ErrMalformedInput)
				assert.Contains(t, err.Error(), c.line)
			})
		}
	})
}

func TestSeedRanges(t *testing.T) {
	_, err := (&Almanac{Seeds: []uint64{1, 2, 3}}).SeedRanges()
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = (&Almanac{Seeds: []uint64{^uint64(0), 2}}).SeedRanges()
	assert.ErrorIs(t, err, ErrMalformedInput)

	rngs, err := (&Almanac{}).SeedRanges()
	require.NoError(t, err)
	assert.Empty(t, rngs)
}

func TestPipeline(t *testing.T) {
	a, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	p, err := a.Pipeline()
	require.NoError(t, err)

	rngs, err := a.SeedRanges()
	require.NoError(t, err)

	s := solver.New(p)
	v, err := s.MinPoint(a.Seeds)
	require.NoError(t, err)
	assert.EqualValues(t, 35, v)

	v, err = s.MinRange(rngs)
	require.NoError(t, err)
	assert.EqualValues(t, 46, v)

	t.Run("overlapping rules", func(t *testing.T) {
		a, err := Parse(strings.NewReader("seeds: 1\n\na-to-b map:\n0 10 5\n0 12 5\n"))
		require.NoError(t, err)
		_, err = a.Pipeline()
		assert.ErrorIs(t, err, stage.ErrMalformedStage)
	})
}
