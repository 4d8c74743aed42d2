package stage

import (
	"fmt"
	"math"
)

// Op is the direction of an Offset.
type Op uint8

const (
	Add Op = iota
	Subtract
)

func (o Op) String() string {
	switch o {
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// Offset is a signed shift stored as a magnitude and a direction, so that values never have
// to leave the unsigned domain.
type Offset struct {
	Op    Op
	Delta uint64
}

// OffsetBetween returns the offset that moves src onto dst.
func OffsetBetween(src, dst uint64) Offset {
	if dst >= src {
		return Offset{Op: Add, Delta: dst - src}
	}

	return Offset{Op: Subtract, Delta: src - dst}
}

// Apply shifts v. It panics if the result would leave the uint64 domain; Build never produces an
// interval for which that can happen.
func (o Offset) Apply(v uint64) uint64 {
	switch o.Op {
	case Add:
		if v > math.MaxUint64-o.Delta {
			panic(fmt.Sprintf("stage: %d %s %d overflows", v, o.Op, o.Delta))
		}
		return v + o.Delta
	case Subtract:
		if v < o.Delta {
			panic(fmt.Sprintf("stage: %d %s %d underflows", v, o.Op, o.Delta))
		}
		return v - o.Delta
	default:
		panic(fmt.Sprintf("stage: unknown op %d", o.Op))
	}
}

func (o Offset) String() string {
	if o.Op == Subtract {
		return fmt.Sprintf("-%d", o.Delta)
	}

	return fmt.Sprintf("+%d", o.Delta)
}
