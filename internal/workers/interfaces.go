// Package workers provides abstractions for running independent units of
// work with bounded parallelism.
// It defines the Worker interface and a Workers aggregate that runs many
// workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any unit of work.
// It defines a single Run method that executes the work and blocks until it
// is done.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    // do the work, honouring ctx
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts an ordinary function to the [Worker] interface.
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
