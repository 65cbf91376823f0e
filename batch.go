package imgmeta

import (
	"fmt"

	"github.com/kovidgoyal/go-parallel"
)

type config struct {
	workers int
}

// Option configures ExtractAll.
type Option func(*config)

// Workers caps the number of files extracted at once. Zero or a negative
// value uses one worker per available CPU.
func Workers(n int) Option {
	return func(c *config) {
		c.workers = max(0, n)
	}
}

// ExtractAll runs Metadata over paths on parallel workers. results[i]
// always belongs to paths[i]; a failing file only sets its own Err.
//
// The returned error is non-nil only if a worker panicked, in which case the
// results that were not reached carry that error.
func ExtractAll(paths []string, opts ...Option) ([]Result, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	done := make([]bool, len(paths))
	err := parallel.Run_in_parallel_over_range(cfg.workers, func(start, limit int) {
		for i := start; i < limit; i++ {
			results[i] = Metadata(paths[i])
			done[i] = true
		}
	}, 0, len(paths))
	if err != nil {
		err = fmt.Errorf("imgmeta: batch extraction: %w", err)
		for i, ok := range done {
			if !ok {
				results[i] = Result{Path: paths[i], Format: FormatFromPath(paths[i]), Err: err}
			}
		}
	}
	return results, err
}
