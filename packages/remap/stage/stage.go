// Package stage implements a single remapping stage: a set of disjoint half-open source intervals,
// each shifting the values it contains by a constant offset.
package stage

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/tidwall/btree"
)

var ErrMalformedStage = errors.New("malformed stage")

// Rule is one "dest src len" line of a stage: [Source, Source+Len) is moved onto
// [Dest, Dest+Len).
type Rule struct {
	Dest, Source, Len uint64
}

func (r Rule) interval() (Interval, error) {
	if r.Len == 0 {
		return Interval{}, fmt.Errorf("%w: empty rule %d %d %d", ErrMalformedStage, r.Dest, r.Source, r.Len)
	}

	end, carry := bits.Add64(r.Source, r.Len, 0)
	if carry != 0 {
		return Interval{}, fmt.Errorf("%w: source %d+%d overflows", ErrMalformedStage, r.Source, r.Len)
	}
	if _, carry := bits.Add64(r.Dest, r.Len, 0); carry != 0 {
		return Interval{}, fmt.Errorf("%w: destination %d+%d overflows", ErrMalformedStage, r.Dest, r.Len)
	}

	return Interval{
		Start:  r.Source,
		End:    end,
		Offset: OffsetBetween(r.Source, r.Dest),
	}, nil
}

// Interval is the source side [Start, End) of a rule together with its shift.
type Interval struct {
	Start, End uint64
	Offset     Offset
}

func (iv Interval) Contains(v uint64) bool {
	return iv.Start <= v && v < iv.End
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d,%d)%s", iv.Start, iv.End, iv.Offset)
}

// OverlapError reports two rules of the same stage whose source intervals intersect.
type OverlapError struct {
	Existing, Inserted Interval
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s: %s overlaps %s", ErrMalformedStage, e.Inserted, e.Existing)
}

func (e *OverlapError) Unwrap() error {
	return ErrMalformedStage
}

// Map is an immutable stage. The zero value is an empty stage, which maps every value to itself.
type Map struct {
	// Keys are interval starts. Build rejects overlaps, so the interval containing a point, if
	// any, is always the one with the greatest start <= the point.
	tree btree.Map[uint64, Interval]
}

// Build creates a stage from its rules. Overlapping source intervals are rejected with an
// *OverlapError, which matches ErrMalformedStage.
func Build(rules []Rule) (*Map, error) {
	m := &Map{}
	for i, r := range rules {
		iv, err := r.interval()
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}

		if existing, ok := m.overlapping(iv); ok {
			return nil, fmt.Errorf("rule %d: %w", i, &OverlapError{Existing: existing, Inserted: iv})
		}

		m.tree.Set(iv.Start, iv)
	}

	return m, nil
}

func (m *Map) overlapping(iv Interval) (Interval, bool) {
	if floor, ok := m.floor(iv.Start); ok && floor.End > iv.Start {
		return floor, true
	}

	var (
		ceil  Interval
		found bool
	)
	m.tree.Ascend(iv.Start, func(_ uint64, candidate Interval) bool {
		ceil, found = candidate, true
		return false
	})
	if found && ceil.Start < iv.End {
		return ceil, true
	}

	return Interval{}, false
}

// floor returns the interval with the greatest start <= v.
func (m *Map) floor(v uint64) (Interval, bool) {
	var (
		iv    Interval
		found bool
	)
	m.tree.Descend(v, func(_ uint64, candidate Interval) bool {
		iv, found = candidate, true
		return false
	})

	return iv, found
}

func (m *Map) find(v uint64) (Interval, bool) {
	iv, ok := m.floor(v)
	if !ok || !iv.Contains(v) {
		return Interval{}, false
	}

	return iv, true
}

// nextStart returns the least interval start strictly greater than v.
func (m *Map) nextStart(v uint64) (uint64, bool) {
	var (
		next  uint64
		found bool
	)
	m.tree.Ascend(v, func(start uint64, _ Interval) bool {
		if start == v {
			return true
		}
		next, found = start, true
		return false
	})

	return next, found
}

func (m *Map) Len() int {
	return m.tree.Len()
}

// Intervals returns the intervals in ascending order.
func (m *Map) Intervals() []Interval {
	intervals := make([]Interval, 0, m.tree.Len())
	m.tree.Scan(func(_ uint64, iv Interval) bool {
		intervals = append(intervals, iv)
		return true
	})

	return intervals
}

// LookupPoint maps v through the stage. Values outside every interval pass through unchanged.
func (m *Map) LookupPoint(v uint64) uint64 {
	iv, ok := m.find(v)
	if !ok {
		return v
	}

	return iv.Offset.Apply(v)
}

// LookupPrefix maps the start of [start, start+length). When the interval containing start ends
// inside the range, limited is true and limit is the number of leading values that interval
// covers; the caller is responsible for the rest.
//
// An uncovered start is passed through with no limit, even if another interval begins inside the
// range. Use LookupPrefixGaps when the stage layout does not guarantee that is safe.
func (m *Map) LookupPrefix(start, length uint64) (mapped, limit uint64, limited bool) {
	iv, ok := m.find(start)
	if !ok {
		return start, 0, false
	}

	return prefixOf(iv, start, length)
}

// LookupPrefixGaps is LookupPrefix, except that an uncovered start is limited at the next
// interval that begins inside the range.
func (m *Map) LookupPrefixGaps(start, length uint64) (mapped, limit uint64, limited bool) {
	iv, ok := m.find(start)
	if ok {
		return prefixOf(iv, start, length)
	}

	if next, ok := m.nextStart(start); ok && next-start < length {
		return start, next - start, true
	}

	return start, 0, false
}

func prefixOf(iv Interval, start, length uint64) (uint64, uint64, bool) {
	mapped := iv.Offset.Apply(start)
	if covered := iv.End - start; covered < length {
		return mapped, covered, true
	}

	return mapped, 0, false
}
