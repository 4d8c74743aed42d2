package solver

import "go.uber.org/atomic"

// Stats are cumulative over the lifetime of a Solver.
type Stats struct {
	Points     uint64 `json:"points"`
	SeedRanges uint64 `json:"seed_ranges"`
	WorkItems  uint64 `json:"work_items"`
	Splits     uint64 `json:"splits"`
}

type counters struct {
	points     atomic.Uint64
	seedRanges atomic.Uint64
	workItems  atomic.Uint64
	splits     atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Points:     c.points.Load(),
		SeedRanges: c.seedRanges.Load(),
		WorkItems:  c.workItems.Load(),
		Splits:     c.splits.Load(),
	}
}
