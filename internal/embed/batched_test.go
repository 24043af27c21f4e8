package embed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchedPreservesOrderAndReportsProgress(t *testing.T) {
	p := NewMockProvider()
	texts := []string{"a", "b", "c", "d", "e"}

	var reports [][2]int
	vecs, err := Batched(context.Background(), p, texts, EmbedModePassage, 2, func(done, total int) {
		reports = append(reports, [2]int{done, total})
	})
	require.NoError(t, err)
	require.Len(t, vecs, 5)

	single, err := p.Embed(context.Background(), []string{"c"}, EmbedModePassage)
	require.NoError(t, err)
	assert.Equal(t, single[0], vecs[2], "batching must not reorder inputs")

	assert.Equal(t, [][2]int{{2, 5}, {4, 5}, {5, 5}}, reports)
}

func TestBatchedStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Batched(ctx, NewMockProvider(), []string{"a"}, EmbedModeQuery, 1, nil)
	assert.Error(t, err)
}

func TestBatchedPropagatesEmbedderFailure(t *testing.T) {
	p := NewMockProvider()
	p.FailWith(errors.New("embedder down"))

	_, err := Batched(context.Background(), p, []string{"a"}, EmbedModePassage, 1, nil)
	assert.ErrorContains(t, err, "embedder down")
}

func TestMockProviderIsDeterministicAndUnitNorm(t *testing.T) {
	p := NewMockProvider()

	a, err := p.Embed(context.Background(), []string{"parse config"}, EmbedModePassage)
	require.NoError(t, err)
	b, err := p.Embed(context.Background(), []string{"parse config"}, EmbedModePassage)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	q, err := p.Embed(context.Background(), []string{"parse config"}, EmbedModeQuery)
	require.NoError(t, err)
	assert.NotEqual(t, a[0], q[0], "query and passage encodings differ")

	var norm float64
	for _, v := range a[0] {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, norm, 1e-3)
}

func TestMockProviderVectorsScorePositive(t *testing.T) {
	p := NewMockProvider()

	vecs, err := p.Embed(context.Background(), []string{"parse config", "write output"}, EmbedModePassage)
	require.NoError(t, err)

	var dot float64
	for i := range vecs[0] {
		dot += float64(vecs[0][i]) * float64(vecs[1][i])
	}
	assert.Greater(t, dot, 0.0, "the shared bias component keeps unrelated pairs above zero")
}
