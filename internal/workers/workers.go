package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Workers runs a set of workers with at most limit of them at a time.
type Workers struct {
	workers []Worker
	limit   int
}

// New returns a Workers aggregate. A limit below 1 runs the workers one by
// one.
func New(limit int, workers ...Worker) *Workers {
	if limit < 1 {
		limit = 1
	}
	return &Workers{workers: workers, limit: limit}
}

// Add appends workers to the aggregate. It must not be called while Run is
// in progress.
func (w *Workers) Add(workers ...Worker) {
	w.workers = append(w.workers, workers...)
}

// Len returns the number of registered workers.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run starts the workers in registration order and waits for all started
// workers to return. The first error cancels the context passed to the
// others, stops scheduling new ones and is returned.
func (w *Workers) Run(ctx context.Context) error {
	limit := w.limit
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, worker := range w.workers {
		worker := worker
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
