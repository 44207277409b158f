package market

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var ErrPollerStopped = errors.New("poller stopped")

// Snapshot is the state of a poller at a point in time.
type Snapshot struct {
	Quotes     Quotes    `json:"quotes"`
	Tick       uint64    `json:"tick"`
	LastUpdate time.Time `json:"last_update"`
	Stale      bool      `json:"stale"`
	InFlight   bool      `json:"in_flight"`
	Err        error     `json:"-"`
}

// Poller fetches quotes for a fixed symbol set on an interval. Every fetch
// is tagged with a tick; a result is applied only if its tick is newer than
// the one already applied, so a slow earlier response never overwrites a
// later one. A failed fetch keeps the previous quotes and marks them stale.
type Poller struct {
	name     string
	source   QuoteSource
	symbols  []string
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	issued   uint64
	applied  uint64
	inFlight int
	quotes   Quotes
	updated  time.Time
	stale    bool
	lastErr  error
	running  bool
	stopped  bool
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewPoller creates a poller. It does nothing until Start or Refresh.
func NewPoller(name string, source QuoteSource, symbols []string, interval time.Duration, logger *zap.Logger) *Poller {
	syms := make([]string, len(symbols))
	copy(syms, symbols)
	return &Poller{
		name:     name,
		source:   source,
		symbols:  syms,
		interval: interval,
		logger:   logger.Named("poller").With(zap.String("feed", name)),
		now:      time.Now,
		quotes:   Quotes{},
	}
}

// Start polls once immediately and then on every interval until ctx is done
// or Stop is called. Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running || p.stopped {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.running = true
	p.cancel = cancel
	p.done = make(chan struct{})
	p.mu.Unlock()

	go p.loop(ctx)
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	p.logger.Info("Starting poll loop", zap.Duration("interval", p.interval), zap.Int("symbols", len(p.symbols)))
	p.trigger(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Stopping poll loop")
			return
		case <-ticker.C:
			p.trigger(ctx)
		}
	}
}

// trigger starts a scheduled fetch unless one is still in flight.
func (p *Poller) trigger(ctx context.Context) {
	p.mu.Lock()
	if p.inFlight > 0 {
		p.mu.Unlock()
		p.logger.Debug("Previous poll still in flight, skipping tick")
		return
	}
	tick := p.begin()
	p.mu.Unlock()

	go p.run(ctx, tick)
}

// Refresh fetches immediately and waits for the result. It may overlap a
// scheduled fetch; the tick guard decides which result is kept.
func (p *Poller) Refresh(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ErrPollerStopped
	}
	tick := p.begin()
	p.mu.Unlock()

	return p.run(ctx, tick)
}

// begin issues a new tick. Callers hold p.mu.
func (p *Poller) begin() uint64 {
	p.issued++
	p.inFlight++
	return p.issued
}

func (p *Poller) run(ctx context.Context, tick uint64) error {
	quotes, err := p.source.Fetch(ctx, p.symbols)
	p.apply(tick, quotes, err)
	return err
}

// apply records the outcome of the fetch issued at tick.
func (p *Poller) apply(tick uint64, quotes Quotes, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.inFlight--
	if p.stopped {
		return
	}
	if tick <= p.applied {
		p.logger.Debug("Discarding out-of-order poll result", zap.Uint64("tick", tick), zap.Uint64("applied", p.applied))
		return
	}
	p.applied = tick

	if err != nil {
		p.stale = true
		p.lastErr = err
		p.logger.Warn("Poll failed, keeping previous quotes", zap.Uint64("tick", tick), zap.Error(err))
		return
	}

	next := make(Quotes, len(quotes))
	for sym, q := range quotes {
		next[sym] = q
	}
	p.quotes = next
	p.updated = p.now()
	p.stale = false
	p.lastErr = nil
	p.logger.Debug("Applied poll result", zap.Uint64("tick", tick), zap.Int("quotes", len(next)))
}

// Snapshot returns a copy of the current state.
func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	quotes := make(Quotes, len(p.quotes))
	for sym, q := range p.quotes {
		quotes[sym] = q
	}
	return Snapshot{
		Quotes:     quotes,
		Tick:       p.applied,
		LastUpdate: p.updated,
		Stale:      p.stale,
		InFlight:   p.inFlight > 0,
		Err:        p.lastErr,
	}
}

// Stop ends the poll loop. Results of fetches still in flight are dropped.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}
