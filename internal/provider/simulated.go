package provider

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"borsa-dashboard-go/internal/catalog"
	"borsa-dashboard-go/internal/market"
	"github.com/shopspring/decimal"
)

// maxDrift is the largest relative deviation from the baseline price.
var maxDrift = decimal.NewFromFloat(0.01)

// Simulated derives quotes from catalog baselines with a small random drift.
// It backs the price proxy when every upstream is unavailable.
type Simulated struct {
	catalog *catalog.Catalog

	mu   sync.Mutex
	rand *rand.Rand
	now  func() time.Time
}

var _ market.QuoteSource = (*Simulated)(nil)

// NewSimulated creates a simulated quote source over cat.
func NewSimulated(cat *catalog.Catalog) *Simulated {
	return &Simulated{
		catalog: cat,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
}

// Fetch returns a quote within ±1% of the baseline for every catalog symbol
// requested. Unknown symbols are omitted.
func (s *Simulated) Fetch(ctx context.Context, symbols []string) (market.Quotes, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	quotes := make(market.Quotes, len(symbols))
	for _, sym := range symbols {
		inst, ok := s.catalog.Lookup(strings.ToUpper(sym))
		if !ok {
			continue
		}
		// factor in [-1, 1)
		factor := decimal.NewFromFloat(s.rand.Float64()*2 - 1)
		price := inst.Price.Add(inst.Price.Mul(maxDrift).Mul(factor)).Round(8)

		q := market.LiveQuote{
			Symbol:    inst.Symbol,
			Price:     price,
			ChangePct: inst.Change,
			Volume:    inst.Volume,
			FetchedAt: now,
		}
		if inst.MarketCap.IsPositive() {
			q.MarketCap = decimal.NewNullDecimal(inst.MarketCap)
		}
		quotes[inst.Symbol] = q
	}
	return quotes, nil
}
