package embed

import (
	"context"
	"fmt"
)

// Batched embeds texts through provider in fixed-size batches, preserving
// input order. report, when non-nil, is invoked after each batch with the
// number of texts embedded so far and the total. The context is checked
// between batches so a cancelled build stops without issuing further
// requests; a failed batch aborts the whole call.
func Batched(ctx context.Context, provider Provider, texts []string, mode EmbedMode, batchSize int, report func(done, total int)) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if batchSize <= 0 {
		batchSize = 32
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}

		vecs, err := provider.Embed(ctx, texts[start:end], mode)
		if err != nil {
			return nil, fmt.Errorf("embedding texts %d-%d of %d: %w", start, end, len(texts), err)
		}
		if len(vecs) != end-start {
			return nil, fmt.Errorf("embedder returned %d vectors for %d inputs", len(vecs), end-start)
		}

		out = append(out, vecs...)
		if report != nil {
			report(end, len(texts))
		}
	}

	return out, nil
}
