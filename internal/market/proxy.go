package market

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"borsa-dashboard-go/internal/catalog"
	"go.uber.org/zap"
)

// Payload sources reported by the price proxy.
const (
	SourceLive      = "live"
	SourceCache     = "cache"
	SourceSimulated = "simulated"
)

// QuoteResponse is the price proxy payload. Degraded is set whenever the
// quotes did not come straight from the upstream provider.
type QuoteResponse struct {
	Quotes    Quotes    `json:"quotes"`
	FetchedAt time.Time `json:"fetched_at"`
	Degraded  bool      `json:"degraded"`
	Source    string    `json:"source"`
}

// PriceProxy forwards quote requests to the upstream provider of a category.
// When the upstream fails it answers from the last good quotes and then from
// the simulated source, flagging the response as degraded.
type PriceProxy struct {
	sources  map[catalog.Category]QuoteSource
	fallback QuoteSource
	logger   *zap.Logger
	now      func() time.Time

	mu    sync.RWMutex
	cache Quotes
}

// NewPriceProxy creates a proxy over per-category sources. fallback may be nil.
func NewPriceProxy(sources map[catalog.Category]QuoteSource, fallback QuoteSource, logger *zap.Logger) *PriceProxy {
	return &PriceProxy{
		sources:  sources,
		fallback: fallback,
		logger:   logger.Named("price-proxy"),
		now:      time.Now,
		cache:    Quotes{},
	}
}

// Quotes returns quotes for symbols of the given category.
func (p *PriceProxy) Quotes(ctx context.Context, category catalog.Category, symbols []string) (QuoteResponse, error) {
	source, ok := p.sources[category]
	if !ok {
		return QuoteResponse{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	symbols = normalizeSymbols(symbols)
	if len(symbols) == 0 {
		return QuoteResponse{}, ErrNoSymbols
	}

	quotes, err := source.Fetch(ctx, symbols)
	if err == nil {
		p.remember(quotes)
		return QuoteResponse{Quotes: quotes, FetchedAt: p.now(), Source: SourceLive}, nil
	}
	if ctx.Err() != nil {
		return QuoteResponse{}, ctx.Err()
	}

	p.logger.Warn("Upstream quote fetch failed, serving fallback",
		zap.String("category", string(category)),
		zap.Strings("symbols", symbols),
		zap.Error(err),
	)

	if cached, fetchedAt := p.recall(symbols); len(cached) > 0 {
		return QuoteResponse{Quotes: cached, FetchedAt: fetchedAt, Degraded: true, Source: SourceCache}, nil
	}

	if p.fallback == nil {
		return QuoteResponse{}, fmt.Errorf("upstream unavailable: %w", err)
	}
	simulated, simErr := p.fallback.Fetch(ctx, symbols)
	if simErr != nil {
		return QuoteResponse{}, fmt.Errorf("upstream unavailable: %w", err)
	}
	return QuoteResponse{Quotes: simulated, FetchedAt: p.now(), Degraded: true, Source: SourceSimulated}, nil
}

func (p *PriceProxy) remember(quotes Quotes) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for sym, q := range quotes {
		p.cache[sym] = q
	}
}

// recall returns the cached quotes among symbols and the oldest fetch time.
func (p *PriceProxy) recall(symbols []string) (Quotes, time.Time) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var oldest time.Time
	out := make(Quotes)
	for _, sym := range symbols {
		q, ok := p.cache[sym]
		if !ok {
			continue
		}
		out[sym] = q
		if oldest.IsZero() || q.FetchedAt.Before(oldest) {
			oldest = q.FetchedAt
		}
	}
	return out, oldest
}

// normalizeSymbols upper-cases, trims and de-duplicates symbols.
func normalizeSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
