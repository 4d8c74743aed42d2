// Package worklist holds the pending sub-ranges of one seed range while they are pushed through a
// pipeline.
package worklist

import (
	"fmt"

	"github.com/suremarc/go-almanac/packages/remap/ranges"
)

// Item is a sub-range [Start, Start+Len) of the seed range, in seed coordinates.
type Item struct {
	Start, Len uint64
}

// Worklist is a LIFO stack of item starts. Every item ends where the seed range ends, so only
// starts are stored.
type Worklist struct {
	seed   ranges.Range
	starts []uint64
}

// New returns a worklist holding the whole of r, or nothing when r is empty.
func New(r ranges.Range) *Worklist {
	w := &Worklist{seed: r}
	if r.Len() > 0 {
		w.starts = append(w.starts, r.Start())
	}

	return w
}

// Push queues [start, end of seed range). start must lie strictly inside the seed range and past its
// start, which holds for every split of an item taken from this worklist.
func (w *Worklist) Push(start uint64) {
	if start <= w.seed.Start() || start >= w.seed.End() {
		panic(fmt.Sprintf("worklist: push of %d outside of (%d, %d)", start, w.seed.Start(), w.seed.End()))
	}

	w.starts = append(w.starts, start)
}

func (w *Worklist) Pop() (Item, bool) {
	if len(w.starts) == 0 {
		return Item{}, false
	}

	start := w.starts[len(w.starts)-1]
	w.starts = w.starts[:len(w.starts)-1]

	return Item{Start: start, Len: w.seed.End() - start}, true
}

func (w *Worklist) Len() int {
	return len(w.starts)
}
