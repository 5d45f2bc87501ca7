// Package cache provides a Redis-backed memoizing decorator for embedders.
//
// Embedding calls dominate the cost of every validation, and the same
// candidate text is often checked more than once across processes. The
// decorator keys vectors by content hash so deterministic embedders can be
// shared through Redis without re-invoking the model.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/datar-psa/goguard/api"
)

const defaultPrefix = "goguard:embed"

// Options configures the caching embedder
type Options struct {
	// Prefix namespaces cache keys, default "goguard:embed". Include the
	// model name when several embedding models share one Redis instance.
	Prefix string
	// TTL is the expiry for cached vectors, 0 = no expiry
	TTL time.Duration
}

// Embedder wraps an api.Embedder with a Redis cache.
// Cache failures never fail an Embed call: a read error is treated as a
// miss and a write error is dropped, so the inner embedder remains the
// source of truth.
type Embedder struct {
	inner  api.Embedder
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewEmbedder creates a caching embedder around inner using the given Redis client.
func NewEmbedder(inner api.Embedder, client redis.UniversalClient, opts Options) *Embedder {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Embedder{
		inner:  inner,
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

// Embed implements api.Embedder.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	key := e.key(text)

	// Any read failure, redis.Nil or transport error alike, is a miss.
	// A corrupt entry is also a miss and gets overwritten below.
	if raw, err := e.client.Get(ctx, key).Result(); err == nil {
		var vector []float64
		if jsonErr := json.Unmarshal([]byte(raw), &vector); jsonErr == nil && len(vector) > 0 {
			return vector, nil
		}
	}

	vector, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(vector); jsonErr == nil {
		e.client.Set(ctx, key, string(payload), e.ttl)
	}

	return vector, nil
}

func (e *Embedder) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return e.prefix + ":" + hex.EncodeToString(sum[:])
}

// Verify that Embedder implements api.Embedder
var _ api.Embedder = (*Embedder)(nil)
