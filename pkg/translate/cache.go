package translate

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/nodewee/doc-translate/pkg/interfaces"
)

// CachingTranslator memoizes successful translations and collapses
// concurrent requests for the same text into one upstream call
type CachingTranslator struct {
	next   interfaces.Translator
	group  singleflight.Group
	mu     sync.RWMutex
	cache  map[string]string
	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Entries int
	Hits    int64
	Misses  int64
}

func NewCachingTranslator(next interfaces.Translator) *CachingTranslator {
	return &CachingTranslator{
		next:  next,
		cache: make(map[string]string),
	}
}

// Translate returns a cached translation or asks the wrapped translator.
// Failures are not cached.
func (t *CachingTranslator) Translate(ctx context.Context, text string) (string, error) {
	t.mu.RLock()
	cached, ok := t.cache[text]
	t.mu.RUnlock()
	if ok {
		t.hits.Add(1)
		return cached, nil
	}

	t.misses.Add(1)
	result, err, _ := t.group.Do(text, func() (interface{}, error) {
		translated, err := t.next.Translate(ctx, text)
		if err != nil {
			return "", err
		}
		t.mu.Lock()
		t.cache[text] = translated
		t.mu.Unlock()
		return translated, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// Stats returns a snapshot of cache counters
func (t *CachingTranslator) Stats() CacheStats {
	t.mu.RLock()
	entries := len(t.cache)
	t.mu.RUnlock()
	return CacheStats{
		Entries: entries,
		Hits:    t.hits.Load(),
		Misses:  t.misses.Load(),
	}
}
