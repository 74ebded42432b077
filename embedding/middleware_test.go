package embedding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	flaky := Func(func(ctx context.Context, text string) ([]float32, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("transient")
		}
		return []float32{1, 0}, nil
	})
	e := Chain(flaky, Retry(3, ExponentialBackoff(time.Millisecond, time.Millisecond)))
	vec, err := e.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vec)
	assert.Equal(t, 3, calls)
}

func TestRetry_ExhaustsAndReturnsLastError(t *testing.T) {
	calls := 0
	broken := Func(func(ctx context.Context, text string) ([]float32, error) {
		calls++
		return nil, errors.New("down")
	})
	e := Chain(broken, Retry(2, ExponentialBackoff(time.Millisecond, time.Millisecond)))
	_, err := e.Embed(context.Background(), "hello")
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestCached_AvoidsSecondCall(t *testing.T) {
	calls := 0
	counting := Func(func(ctx context.Context, text string) ([]float32, error) {
		calls++
		return []float32{0.5, 0.5}, nil
	})
	e := Chain(counting, Cached(NewInMemoryCache(), time.Minute))
	ctx := context.Background()
	first, err := e.Embed(ctx, "same text")
	require.NoError(t, err)
	second, err := e.Embed(ctx, "same text")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestInMemoryCache_Expiry(t *testing.T) {
	c := NewInMemoryCache()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", []byte("v"), -time.Second))
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestLogging_PassesThrough(t *testing.T) {
	var logged bool
	e := Chain(
		Func(func(ctx context.Context, text string) ([]float32, error) {
			return []float32{1}, nil
		}),
		Logging(func(format string, args ...interface{}) { logged = true }),
	)
	_, err := e.Embed(context.Background(), "x")
	require.NoError(t, err)
	assert.True(t, logged)
}
