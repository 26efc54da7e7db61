// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"hyperex/internal/engine"
	"hyperex/internal/fasta"
)

// Config controls the scanning pipeline.
type Config struct {
	Threads int // worker goroutines; <1 means runtime.NumCPU()
}

// Result is one record and what the extractor found in it.
type Result struct {
	Index  int // 0-based position in the input
	Record fasta.Record
	Report engine.Report
}

type job struct {
	idx int
	rec fasta.Record
}

// Run reads records from src, extracts them on cfg.Threads workers and calls
// visit once per record in input order, from a single goroutine. Output is
// identical for any thread count.
//
// It returns the first error encountered: a scan error, an error from visit,
// or ctx.Err() on cancellation.
func Run(ctx context.Context, cfg Config, src io.Reader, ext Extractor, visit func(Result) error) error {
	threads := cfg.Threads
	if threads < 1 {
		threads = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job, threads*2)
	results := make(chan Result, threads*2)

	// Feed work
	g.Go(func() error {
		defer close(jobs)
		idx := 0
		return fasta.ScanCtx(gctx, src, func(r fasta.Record) error {
			select {
			case jobs <- job{idx: idx, rec: r}:
				idx++
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})

	// Workers
	workers, wctx := errgroup.WithContext(gctx)
	for w := 0; w < threads; w++ {
		workers.Go(func() error {
			for j := range jobs {
				res := Result{Index: j.idx, Record: j.rec, Report: ext.Extract(j.rec.ID, j.rec.Seq)}
				select {
				case results <- res:
				case <-wctx.Done():
					return wctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(results)
		return workers.Wait()
	})

	// Collector: restore input order before visiting.
	g.Go(func() error {
		pending := make(map[int]Result)
		next := 0
		for res := range results {
			pending[res.Index] = res
			for {
				r, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if err := visit(r); err != nil {
					drain(results)
					return err
				}
			}
		}
		return nil
	})

	err := g.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func drain(ch <-chan Result) {
	go func() {
		for range ch {
		}
	}()
}
