// Package solver finds the least value a pipeline produces for a set of seeds or seed ranges.
//
// Every stage shifts the values of one interval by a constant, so within a sub-range that no
// stage boundary cuts, the composed mapping is increasing and the sub-range's minimum is the image
// of its start. Range mode therefore only evaluates the starts of the sub-ranges that stage
// boundaries split a seed range into, never the values in between.
package solver

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/suremarc/go-almanac/packages/remap/pipeline"
	"github.com/suremarc/go-almanac/packages/remap/ranges"
	"github.com/suremarc/go-almanac/packages/remap/stage"
	"github.com/suremarc/go-almanac/packages/remap/worklist"
)

var ErrNoSeeds = errors.New("no seeds")

type Solver struct {
	stages []pipeline.Stage
	log    logrus.FieldLogger
	gaps   bool

	splitTrace *rate.Sometimes
	counters   counters
}

type Option func(*Solver)

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Solver) {
		s.log = l
	}
}

// WithGapSplitting makes range mode split a sub-range whose start no interval covers at the next
// interval that begins inside it. Without it, an uncovered start is assumed to mean the whole
// sub-range is uncovered in that stage, which matches how almanac inputs are laid out.
func WithGapSplitting() Option {
	return func(s *Solver) {
		s.gaps = true
	}
}

// WithSplitTraceInterval sets how often splits are logged at trace level after the first few.
func WithSplitTraceInterval(d time.Duration) Option {
	return func(s *Solver) {
		s.splitTrace = &rate.Sometimes{First: 10, Interval: d}
	}
}

func New(p *pipeline.Pipeline, opts ...Option) *Solver {
	s := &Solver{
		stages:     p.Stages(),
		log:        logrus.StandardLogger(),
		splitTrace: &rate.Sometimes{First: 10, Interval: time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Solver) Stats() Stats {
	return s.counters.snapshot()
}

// MinPoint returns the least location of any of the seeds.
func (s *Solver) MinPoint(seeds []uint64) (uint64, error) {
	if len(seeds) == 0 {
		return 0, ErrNoSeeds
	}

	var acc Minimum
	for _, seed := range seeds {
		v := seed
		for _, st := range s.stages {
			v = st.Map.LookupPoint(v)
		}
		acc.Observe(v)
	}
	s.counters.points.Add(uint64(len(seeds)))

	v, _ := acc.Value()
	s.log.WithFields(logrus.Fields{
		"seeds":   len(seeds),
		"minimum": v,
	}).Debug("solved seeds")

	return v, nil
}

// MinRange returns the least location of any value in any of the ranges. Empty ranges are skipped.
func (s *Solver) MinRange(rngs ranges.Ranges) (uint64, error) {
	var acc Minimum
	for _, r := range rngs {
		if r.Len() == 0 {
			continue
		}

		acc.Merge(s.solveRange(r, s.log))
	}

	v, ok := acc.Value()
	if !ok {
		return 0, ErrNoSeeds
	}

	return v, nil
}

// solveRange pushes every sub-range of r through the stages. A stage that covers only a prefix of
// the current sub-range shrinks it to that prefix and queues the remainder, which restarts from the
// first stage since its own path through the stages is unknown.
func (s *Solver) solveRange(r ranges.Range, log logrus.FieldLogger) Minimum {
	logger := log.WithField("range", r)

	var (
		acc   Minimum
		items uint64
	)
	w := worklist.New(r)
	for item, ok := w.Pop(); ok; item, ok = w.Pop() {
		output, length := item.Start, item.Len
		for i, st := range s.stages {
			mapped, limit, limited := s.lookupPrefix(st.Map, output, length)
			output = mapped
			if limited && limit < length {
				length = limit
				w.Push(item.Start + length)
				s.counters.splits.Inc()

				s.splitTrace.Do(func() {
					logger.WithFields(logrus.Fields{
						"stage": i,
						"start": item.Start,
						"len":   length,
					}).Trace("split work item")
				})
			}
		}

		items++
		acc.Observe(output)
	}
	s.counters.workItems.Add(items)
	s.counters.seedRanges.Inc()

	v, _ := acc.Value()
	logger.WithFields(logrus.Fields{
		"minimum": v,
		"items":   items,
	}).Debug("solved seed range")

	return acc
}

func (s *Solver) lookupPrefix(m *stage.Map, start, length uint64) (uint64, uint64, bool) {
	if s.gaps {
		return m.LookupPrefixGaps(start, length)
	}

	return m.LookupPrefix(start, length)
}
