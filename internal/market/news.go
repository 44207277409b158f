package market

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type newsEntry struct {
	items     []NewsItem
	fetchedAt time.Time
}

// NewsFeed caches headlines per symbol for a fixed period. Concurrent misses
// for the same symbol share one upstream call. When the upstream fails a
// previously cached answer is served even if it has expired.
type NewsFeed struct {
	source NewsSource
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]newsEntry
}

// NewNewsFeed creates a news cache in front of source.
func NewNewsFeed(source NewsSource, ttl time.Duration, logger *zap.Logger) *NewsFeed {
	return &NewsFeed{
		source: source,
		ttl:    ttl,
		logger: logger.Named("news"),
		now:    time.Now,
		cache:  make(map[string]newsEntry),
	}
}

// News returns the headlines for q.
func (f *NewsFeed) News(ctx context.Context, q NewsQuery) ([]NewsItem, error) {
	q.Symbol = strings.ToUpper(strings.TrimSpace(q.Symbol))
	if q.Symbol == "" {
		return nil, ErrNoSymbols
	}

	f.mu.RLock()
	entry, cached := f.cache[q.Symbol]
	f.mu.RUnlock()
	if cached && f.now().Sub(entry.fetchedAt) < f.ttl {
		return entry.items, nil
	}

	v, err, _ := f.group.Do(q.Symbol, func() (interface{}, error) {
		items, err := f.source.News(ctx, q)
		if err != nil {
			return nil, err
		}
		f.mu.Lock()
		f.cache[q.Symbol] = newsEntry{items: items, fetchedAt: f.now()}
		f.mu.Unlock()
		return items, nil
	})
	if err != nil {
		if cached {
			f.logger.Warn("News fetch failed, serving expired entry", zap.String("symbol", q.Symbol), zap.Error(err))
			return entry.items, nil
		}
		return nil, err
	}
	return v.([]NewsItem), nil
}

var _ NewsSource = (*NewsFeed)(nil)
