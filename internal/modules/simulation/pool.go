package simulation

import (
	"context"
	"sync"
)

// runTrials executes n independent paths and returns them in trial order.
//
// Each path gets its own generator seeded with (seed, trial index), so the
// outcome does not depend on how many workers run or in which order they pick
// up jobs. Cancellation is checked between paths, never inside one.
func (s *Simulator) runTrials(ctx context.Context, p *plan, n int, seed uint64) ([]Trial, error) {
	if s.source != nil {
		return s.runSequential(ctx, p, n)
	}

	trials := make([]Trial, n)

	// Create channel for work distribution
	jobs := make(chan int, n)

	var wg sync.WaitGroup
	numActualWorkers := s.workers
	if n < numActualWorkers {
		numActualWorkers = n // Don't spawn more workers than paths
	}

	for i := 0; i < numActualWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					continue // drain remaining jobs
				}
				sampler := newNormalSampler(NewSeededSource(seed, uint64(idx)))
				// Disjoint slots, no locking needed
				trials[idx] = p.run(sampler)
			}
		}()
	}

	// Send jobs to workers
	for idx := 0; idx < n; idx++ {
		jobs <- idx
	}
	close(jobs)

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return trials, nil
}

// runSequential draws every path from the single injected source, in order
func (s *Simulator) runSequential(ctx context.Context, p *plan, n int) ([]Trial, error) {
	trials := make([]Trial, n)
	sampler := newNormalSampler(s.source)

	for idx := 0; idx < n; idx++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		trials[idx] = p.run(sampler)
	}
	return trials, nil
}
