package translate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTranslator struct {
	calls atomic.Int32
	fail  bool
}

func (c *countingTranslator) Translate(ctx context.Context, text string) (string, error) {
	c.calls.Add(1)
	if c.fail {
		return "", errors.New("boom")
	}
	return "T(" + text + ")", nil
}

func TestCachingTranslator(t *testing.T) {
	next := &countingTranslator{}
	cache := NewCachingTranslator(next)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := cache.Translate(context.Background(), "отчет")
			assert.NoError(t, err)
			assert.Equal(t, "T(отчет)", got)
		}()
	}
	wg.Wait()

	got, err := cache.Translate(context.Background(), "отчет")
	require.NoError(t, err)
	assert.Equal(t, "T(отчет)", got)

	assert.LessOrEqual(t, next.calls.Load(), int32(10))
	stats := cache.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(11), stats.Hits+stats.Misses)
	assert.GreaterOrEqual(t, stats.Hits, int64(1))
}

func TestCachingTranslatorDoesNotCacheFailures(t *testing.T) {
	next := &countingTranslator{fail: true}
	cache := NewCachingTranslator(next)

	_, err := cache.Translate(context.Background(), "a")
	assert.Error(t, err)
	_, err = cache.Translate(context.Background(), "a")
	assert.Error(t, err)

	assert.Equal(t, int32(2), next.calls.Load())
	assert.Zero(t, cache.Stats().Entries)
}
