package solver

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/suremarc/go-almanac/packages/remap/ranges"
)

// MinRangeParallel is MinRange with the seed ranges spread over n workers. Each worker owns the
// worklist of the range it is solving. Cancelling ctx stops the workers from taking new ranges and
// returns ctx's error.
func (s *Solver) MinRangeParallel(ctx context.Context, rngs ranges.Ranges, n int) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if n <= 1 {
		return s.MinRange(rngs)
	}

	rngs = rngs.NonEmpty()
	if len(rngs) == 0 {
		return 0, ErrNoSeeds
	}

	work := make(chan ranges.Range)
	eg, eCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer close(work)
		for _, r := range rngs {
			select {
			case <-eCtx.Done():
				return eCtx.Err()
			case work <- r:
			}
		}

		return nil
	})

	var (
		mu  sync.Mutex
		acc Minimum
	)
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			logger := s.log.WithField("worker", i)
			for {
				select {
				case <-eCtx.Done():
					return eCtx.Err()
				case r, ok := <-work:
					if !ok {
						return nil
					}

					m := s.solveRange(r, logger)
					mu.Lock()
					acc.Merge(m)
					mu.Unlock()
				}
			}
		})
	}

	if err := eg.Wait(); err != nil {
		return 0, err
	}

	v, ok := acc.Value()
	if !ok {
		return 0, ErrNoSeeds
	}

	return v, nil
}
