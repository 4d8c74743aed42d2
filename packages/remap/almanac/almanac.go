// Package almanac reads puzzle input: a seeds line followed by one map block per stage.
//
//	seeds: 79 14 55 13
//
//	seed-to-soil map:
//	50 98 2
//	52 50 48
//
// Blocks are applied in the order they appear.
package almanac

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/suremarc/go-almanac/packages/remap/pipeline"
	"github.com/suremarc/go-almanac/packages/remap/ranges"
	"github.com/suremarc/go-almanac/packages/remap/stage"
)

var ErrMalformedInput = errors.New("malformed input")

const (
	seedsPrefix = "seeds:"
	mapSuffix   = " map:"
)

type Almanac struct {
	Seeds  []uint64
	Stages []pipeline.Spec
}

// SeedRanges reads Seeds as (start, length) pairs.
func (a *Almanac) SeedRanges() (ranges.Ranges, error) {
	if len(a.Seeds)%2 != 0 {
		return nil, fmt.Errorf("%w: %d seed values do not form start/length pairs", ErrMalformedInput, len(a.Seeds))
	}

	rngs := make(ranges.Ranges, 0, len(a.Seeds)/2)
	for i := 0; i < len(a.Seeds); i += 2 {
		r, err := ranges.FromLength(a.Seeds[i], a.Seeds[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: seed pair %d: %s", ErrMalformedInput, i/2, err)
		}
		rngs = append(rngs, r)
	}

	return rngs, nil
}

func (a *Almanac) Pipeline() (*pipeline.Pipeline, error) {
	return pipeline.Build(a.Stages)
}

func Parse(r io.Reader) (*Almanac, error) {
	var (
		almanac  Almanac
		seedsSet bool
		current  *pipeline.Spec
		lineNum  int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			current = nil

		case strings.HasPrefix(line, seedsPrefix):
			if seedsSet {
				return nil, fmt.Errorf("%w: line %d: duplicate seeds line", ErrMalformedInput, lineNum)
			}
			seeds, err := parseNumbers(strings.TrimPrefix(line, seedsPrefix))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %s", ErrMalformedInput, lineNum, err)
			}
			almanac.Seeds, seedsSet = seeds, true

		case strings.HasSuffix(line, mapSuffix):
			almanac.Stages = append(almanac.Stages, pipeline.Spec{
				Name: strings.TrimSuffix(line, mapSuffix),
			})
			current = &almanac.Stages[len(almanac.Stages)-1]

		default:
			if current == nil {
				return nil, fmt.Errorf("%w: line %d: rule outside of a map block: %q", ErrMalformedInput, lineNum, line)
			}
			nums, err := parseNumbers(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %s", ErrMalformedInput, lineNum, err)
			}
			if len(nums) != 3 {
				return nil, fmt.Errorf("%w: line %d: want 3 numbers, got %d", ErrMalformedInput, lineNum, len(nums))
			}
			current.Rules = append(current.Rules, stage.Rule{Dest: nums[0], Source: nums[1], Len: nums[2]})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !seedsSet {
		return nil, fmt.Errorf("%w: no seeds line", ErrMalformedInput)
	}

	return &almanac, nil
}

func parseNumbers(s string) ([]uint64, error) {
	fields := strings.Fields(s)
	nums := make([]uint64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", f)
		}
		nums = append(nums, n)
	}

	return nums, nil
}
