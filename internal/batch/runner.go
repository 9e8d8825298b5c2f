package batch

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ProcessFunc handles one file. Errors are counted, not fatal to the run.
type ProcessFunc func(ctx context.Context, path string) error

// FileResult records the outcome for one file.
type FileResult struct {
	Path     string
	Err      string
	Duration time.Duration
}

// RunStats aggregates a batch run.
type RunStats struct {
	Succeeded uint32
	Failed    uint32
}

// Runner fans paths out over a fixed worker pool. Order of results follows
// completion, not input.
type Runner struct {
	Workers int
	Logger  *slog.Logger
	Process ProcessFunc
}

func NewRunner(workers int, logger *slog.Logger, process ProcessFunc) *Runner {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Workers: workers, Logger: logger, Process: process}
}

// Run processes every path and returns per-file results plus aggregate stats.
// A cancelled context stops feeding new work; in-flight files finish.
func (r *Runner) Run(ctx context.Context, paths []string) ([]FileResult, RunStats) {
	jobs := make(chan string)
	results := make(chan FileResult, len(paths))
	var failed, succeeded atomic.Uint32

	var wg sync.WaitGroup
	for i := 0; i < r.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				start := time.Now()
				err := r.Process(ctx, path)
				res := FileResult{Path: path, Duration: time.Since(start)}
				if err != nil {
					res.Err = err.Error()
					failed.Add(1)
					r.Logger.Error("batch.file.failed", "path", path, "error", err)
				} else {
					succeeded.Add(1)
					r.Logger.Info("batch.file.ok", "path", path, "elapsed_ms", res.Duration.Milliseconds())
				}
				results <- res
			}
		}()
	}

feed:
	for _, p := range paths {
		select {
		case jobs <- p:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	out := make([]FileResult, 0, len(paths))
	for res := range results {
		out = append(out, res)
	}
	return out, RunStats{Succeeded: succeeded.Load(), Failed: failed.Load()}
}
