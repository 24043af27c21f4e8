package pipeline

import (
	"context"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/bivav/code-cognitio/internal/chunk"
)

// fileJob is one file handed to a worker.
type fileJob struct {
	index int
	path  string
}

// fileOutcome is a worker's result for one file, carrying its original
// walk-order index so the collector can reassemble deterministic output
// despite workers finishing out of order.
type fileOutcome struct {
	index  int
	chunks []*chunk.Chunk
}

// Extract walks roots, dispatches each file to its extractor across a
// fixed-size worker pool, normalizes and section-chunks the results, and
// returns every chunk in deterministic (walk, then extractor-emission)
// order. A per-file extraction failure is logged at WARN and the file is
// skipped — extractors never abort a build. Cancellation takes
// effect at file boundaries: in-flight files finish, queued files are
// dropped, and partially extracted chunks from files that were cancelled
// mid-extraction are discarded.
func (p *Pipeline) Extract(ctx context.Context, roots []string) ([]*chunk.Chunk, error) {
	paths, err := p.Walker.Walk(roots)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	workers := p.Config.WorkerCount
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan fileJob)
	results := make(chan fileOutcome, len(paths))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				chunks := p.extractFile(ctx, job.path)
				results <- fileOutcome{index: job.index, chunks: chunks}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, path := range paths {
			select {
			case <-ctx.Done():
				return
			case jobs <- fileJob{index: i, path: path}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make([]fileOutcome, 0, len(paths))
	for outcome := range results {
		outcomes = append(outcomes, outcome)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].index < outcomes[j].index })

	var all []*chunk.Chunk
	for _, outcome := range outcomes {
		all = append(all, outcome.chunks...)
	}
	return all, nil
}

// extractFile resolves path's extractor, reads and extracts its chunks, and
// runs each through the normalizer and (for sections exceeding the max)
// section chunker. Extraction/read failures are logged and yield no chunks
// for this file rather than aborting the build.
func (p *Pipeline) extractFile(ctx context.Context, path string) []*chunk.Chunk {
	extractor := p.Registry.Resolve(path)
	if extractor == nil {
		return nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		p.Logger.Infof("reading %s: %v", path, err)
		return nil
	}

	chunks, err := extractor.Extract(ctx, path, source)
	if err != nil {
		p.Logger.Warnf("extracting %s: %v", path, err)
		return nil
	}

	var out []*chunk.Chunk
	for _, c := range chunks {
		for _, piece := range p.Chunker.Chunk(c) {
			p.Normalizer.Normalize(piece)
			out = append(out, piece)
		}
	}
	return out
}
