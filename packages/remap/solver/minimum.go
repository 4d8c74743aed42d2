package solver

import "math"

// Minimum accumulates the least value observed. The zero value has observed nothing.
type Minimum struct {
	value uint64
	seen  bool
}

func (m *Minimum) Observe(v uint64) {
	if !m.seen || v < m.value {
		m.value, m.seen = v, true
	}
}

func (m *Minimum) Merge(other Minimum) {
	if other.seen {
		m.Observe(other.value)
	}
}

// Value returns the minimum, or math.MaxUint64 and false if nothing was observed.
func (m Minimum) Value() (uint64, bool) {
	if !m.seen {
		return math.MaxUint64, false
	}

	return m.value, true
}
