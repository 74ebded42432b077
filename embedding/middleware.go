package embedding

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"time"
)

// Middleware wraps an embedder with additional behavior (logging, retry,
// caching). Timeout and retry policy live here, outside the engine core.
type Middleware func(Embedder) Embedder

// Chain wraps e with all middlewares in order (first middleware is outermost).
func Chain(e Embedder, mws ...Middleware) Embedder {
	for i := len(mws) - 1; i >= 0; i-- {
		e = mws[i](e)
	}
	return e
}

// loggingEmbedder logs each Embed call.
type loggingEmbedder struct {
	next Embedder
	logf func(format string, args ...interface{})
}

// Logging returns a middleware that logs each Embed call (text length,
// vector dimensionality, error).
func Logging(logf func(format string, args ...interface{})) Middleware {
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	return func(e Embedder) Embedder {
		return &loggingEmbedder{next: e, logf: logf}
	}
}

func (l *loggingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := l.next.Embed(ctx, text)
	if err != nil {
		l.logf("embed text_len=%d error: %v", len(text), err)
		return nil, err
	}
	l.logf("embed text_len=%d dim=%d", len(text), len(vec))
	return vec, nil
}

// BackoffFunc returns delay before the next retry (attempt is 0-based).
type BackoffFunc func(attempt int) time.Duration

// ExponentialBackoff returns delay = base * 2^attempt, capped at max.
func ExponentialBackoff(base, max time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		d := base * time.Duration(math.Pow(2, float64(attempt)))
		if d > max {
			return max
		}
		return d
	}
}

// retryEmbedder retries failed Embed calls with backoff.
type retryEmbedder struct {
	next       Embedder
	maxRetries int
	backoff    BackoffFunc
}

// Retry returns a middleware that retries failed Embed calls up to
// maxRetries times, waiting backoff(attempt) between attempts.
func Retry(maxRetries int, backoff BackoffFunc) Middleware {
	if backoff == nil {
		backoff = ExponentialBackoff(500*time.Millisecond, 30*time.Second)
	}
	return func(e Embedder) Embedder {
		return &retryEmbedder{next: e, maxRetries: maxRetries, backoff: backoff}
	}
}

func (r *retryEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.backoff(attempt - 1)):
			}
		}
		vec, err := r.next.Embed(ctx, text)
		if err == nil {
			return vec, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// Cache is the interface for embedding caching.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// cacheEmbedder caches vectors by input text. Safe because embedders are
// deterministic.
type cacheEmbedder struct {
	next  Embedder
	cache Cache
	ttl   time.Duration
}

// Cached returns a middleware that caches Embed results keyed by input text.
func Cached(cache Cache, ttl time.Duration) Middleware {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return func(e Embedder) Embedder {
		return &cacheEmbedder{next: e, cache: cache, ttl: ttl}
	}
}

func (c *cacheEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if c.cache != nil {
		if raw, ok := c.cache.Get(ctx, text); ok {
			var vec []float32
			if err := json.Unmarshal(raw, &vec); err == nil && len(vec) > 0 {
				return vec, nil
			}
		}
	}
	vec, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		if raw, err := json.Marshal(vec); err == nil {
			_ = c.cache.Set(ctx, text, raw, c.ttl)
		}
	}
	return vec, nil
}

// InMemoryCache is a simple in-memory cache (for testing/single process).
type InMemoryCache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
}

type cacheEntry struct {
	val     []byte
	expires time.Time
}

func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{store: make(map[string]cacheEntry)}
}

func (m *InMemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.store[key]
	m.mu.RUnlock()
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.val, true
}

func (m *InMemoryCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.store[key] = cacheEntry{val: val, expires: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}
