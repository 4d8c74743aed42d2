package ranges

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// Range is a half-open range [start, end) of unsigned values whose text representation is an
// inclusive range, e.g. 79-92. All Range objects have start < end by construction, except for the
// empty Range.
type Range struct {
	start, end uint64
}

var _ encoding.TextUnmarshaler = &Range{}
var _ encoding.TextMarshaler = &Range{}

var ErrInvalidRange = errors.New("invalid range")

// NewRange returns the range containing first through last, inclusive.
func NewRange(first, last uint64) (Range, error) {
	if last < first || last == math.MaxUint64 {
		return Range{}, fmt.Errorf("%w: %d-%d", ErrInvalidRange, first, last)
	}

	return Range{start: first, end: last + 1}, nil
}

// FromLength returns [start, start+length).
func FromLength(start, length uint64) (Range, error) {
	end, carry := bits.Add64(start, length, 0)
	if carry != 0 {
		return Range{}, fmt.Errorf("%w: %d+%d overflows", ErrInvalidRange, start, length)
	}
	if length == 0 {
		return Range{}, nil
	}

	return Range{start: start, end: end}, nil
}

func (r Range) Start() uint64 {
	return r.start
}

func (r Range) End() uint64 {
	return r.end
}

func (r Range) Len() uint64 {
	return r.end - r.start
}

func (r Range) Contains(v uint64) bool {
	return r.start <= v && v < r.end
}

func (r Range) String() string {
	buf, _ := r.MarshalText()
	return string(buf)
}

func (r *Range) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))

	if s == "" {
		*r = Range{}
		return nil
	}

	results := strings.Split(s, "-")
	if len(results) > 2 {
		return fmt.Errorf("%w: %s", ErrInvalidRange, s)
	}

	num1, err := strconv.ParseUint(results[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRange, s)
	}
	num2 := num1

	if len(results) == 2 {
		num2, err = strconv.ParseUint(results[1], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidRange, s)
		}
	}

	rng, err := NewRange(num1, num2)
	if err != nil {
		return err
	}

	*r = rng
	return nil
}

func (r Range) MarshalText() ([]byte, error) {
	if r.Len() == 0 {
		return []byte(""), nil
	}

	return []byte(fmt.Sprintf("%d-%d", r.start, r.end-1)), nil
}

// AsIntSlice enumerates every value in the range. Only use it on small ranges.
func (r Range) AsIntSlice() []uint64 {
	entries := make([]uint64, 0, r.Len())
	for i := r.start; i < r.end; i++ {
		entries = append(entries, i)
	}

	return entries
}

type Ranges []Range

var _ encoding.TextUnmarshaler = &Ranges{}
var _ encoding.TextMarshaler = &Ranges{}

func (r *Ranges) UnmarshalText(text []byte) error {
	s := string(text)

	if s == "" {
		*r = nil
		return nil
	}

	list := strings.Split(s, ",")
	*r = make(Ranges, len(list))

	for i := range list {
		if err := (*r)[i].UnmarshalText([]byte(list[i])); err != nil {
			return err
		}
	}

	return nil
}

func (r Ranges) MarshalText() ([]byte, error) {
	results := make([]string, 0, len(r))
	for _, rng := range r {
		buf, _ := rng.MarshalText() // the error will always be nil in our implementation
		results = append(results, string(buf))
	}

	return []byte(strings.Join(results, ",")), nil
}

func (r Ranges) String() string {
	buf, _ := r.MarshalText()
	return string(buf)
}

// Len is the total number of values in r. Overlapping ranges are counted twice.
func (r Ranges) Len() uint64 {
	var n uint64
	for i := range r {
		n += r[i].Len()
	}

	return n
}

// NonEmpty drops the empty ranges, keeping order.
func (r Ranges) NonEmpty() Ranges {
	var filtered Ranges
	for i := range r {
		if r[i].Len() == 0 {
			continue
		}

		filtered = append(filtered, r[i])
	}

	return filtered
}

func (r Ranges) AsIntSlice() []uint64 {
	var entries []uint64
	for i := range r {
		entries = append(entries, r[i].AsIntSlice()...)
	}

	return entries
}
