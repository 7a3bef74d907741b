package talon

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Runner executes a set of independent row-hashing batches.
//
// Implementations may run the tasks concurrently,
// but Run must not return before every started task has finished,
// and it must report the first error encountered.
// Batches write to disjoint node slots,
// so the execution order never affects the resulting tree.
type Runner interface {
	Run(tasks []func() error) error
}

// SerialRunner runs every batch on the calling goroutine, in order.
// It is the default when [TreeConfig.Runner] is nil.
type SerialRunner struct{}

func (SerialRunner) Run(tasks []func() error) error {
	for _, task := range tasks {
		if err := task(); err != nil {
			return err
		}
	}
	return nil
}

// ParallelRunner runs batches on a bounded pool of goroutines.
// For the same input it produces output identical to [SerialRunner];
// it is purely a throughput optimization.
type ParallelRunner struct {
	// Workers bounds how many batches run concurrently.
	// Zero or negative means GOMAXPROCS.
	Workers int
}

func (r ParallelRunner) Run(tasks []func() error) error {
	limit := r.Workers
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	var eg errgroup.Group
	eg.SetLimit(limit)
	for _, task := range tasks {
		eg.Go(task)
	}
	return eg.Wait()
}
