package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEmbedder counts calls and returns a fixed vector per text
type countingEmbedder struct {
	calls int
	err   error
}

func (e *countingEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	// Deterministic per-text vector
	return []float64{float64(len(text)), 1.0, 0.0}, nil
}

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestEmbedder_CachesVectors(t *testing.T) {
	ctx := context.Background()
	_, client := newTestClient(t)

	inner := &countingEmbedder{}
	cached := NewEmbedder(inner, client, Options{})

	first, err := cached.Embed(ctx, "hello world")
	require.NoError(t, err)

	second, err := cached.Embed(ctx, "hello world")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls, "second call should be served from cache")
}

func TestEmbedder_DistinctTextsDistinctEntries(t *testing.T) {
	ctx := context.Background()
	_, client := newTestClient(t)

	inner := &countingEmbedder{}
	cached := NewEmbedder(inner, client, Options{})

	a, err := cached.Embed(ctx, "first text")
	require.NoError(t, err)
	b, err := cached.Embed(ctx, "second text, longer")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, inner.calls)
}

func TestEmbedder_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)

	inner := &countingEmbedder{}
	cached := NewEmbedder(inner, client, Options{TTL: time.Minute})

	_, err := cached.Embed(ctx, "expiring")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = cached.Embed(ctx, "expiring")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls, "expired entry should be recomputed")
}

func TestEmbedder_PrefixNamespacesModels(t *testing.T) {
	ctx := context.Background()
	_, client := newTestClient(t)

	innerA := &countingEmbedder{}
	innerB := &countingEmbedder{}
	cachedA := NewEmbedder(innerA, client, Options{Prefix: "goguard:embed:model-a"})
	cachedB := NewEmbedder(innerB, client, Options{Prefix: "goguard:embed:model-b"})

	_, err := cachedA.Embed(ctx, "shared text")
	require.NoError(t, err)
	_, err = cachedB.Embed(ctx, "shared text")
	require.NoError(t, err)

	assert.Equal(t, 1, innerA.calls)
	assert.Equal(t, 1, innerB.calls, "prefixes must not share entries")
}

func TestEmbedder_RedisDownFallsBackToInner(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	mr.Close()

	inner := &countingEmbedder{}
	cached := NewEmbedder(inner, client, Options{})

	vector, err := cached.Embed(ctx, "no redis")
	require.NoError(t, err)
	assert.NotEmpty(t, vector)
	assert.Equal(t, 1, inner.calls)
}

func TestEmbedder_InnerErrorPropagates(t *testing.T) {
	ctx := context.Background()
	_, client := newTestClient(t)

	inner := &countingEmbedder{err: fmt.Errorf("model unavailable")}
	cached := NewEmbedder(inner, client, Options{})

	_, err := cached.Embed(ctx, "text")
	assert.Error(t, err)
}

func TestEmbedder_CorruptEntryRecomputed(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)

	inner := &countingEmbedder{}
	cached := NewEmbedder(inner, client, Options{})

	_, err := cached.Embed(ctx, "text")
	require.NoError(t, err)

	// Overwrite the cached vector with garbage
	var key string
	for _, k := range mr.Keys() {
		key = k
	}
	require.NotEmpty(t, key)
	require.NoError(t, mr.Set(key, "not json"))

	vector, err := cached.Embed(ctx, "text")
	require.NoError(t, err)
	assert.NotEmpty(t, vector)
	assert.Equal(t, 2, inner.calls, "corrupt entry should be recomputed")
}
