package core

import (
	"context"
	"sync"

	"github.com/huangsam/scorecard/schema"
)

// ScoreBatch evaluates submissions in parallel using a worker pool.
// Results keep the input order. Cancelling ctx stops the remaining work and
// returns the context error.
func ScoreBatch(ctx context.Context, engine *Engine, subs []schema.Submission, workers int) ([]schema.ScoredSubmission, error) {
	if workers < 1 {
		workers = 1
	}
	workers = min(workers, max(len(subs), 1))

	results := make([]schema.ScoredSubmission, len(subs))
	idxCh := make(chan int, len(subs))
	var wg sync.WaitGroup

	// Start worker pool
	for range workers {
		wg.Go(func() {
			for i := range idxCh {
				if ctx.Err() != nil {
					continue // drain
				}
				// Each worker writes to a unique index, which is safe.
				results[i] = engine.Evaluate(subs[i])
			}
		})
	}

	for i := range subs {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
