package market

import (
	"context"
	"fmt"
	"time"

	"borsa-dashboard-go/internal/catalog"
)

// Status describes how fresh the quotes behind a view are.
type Status struct {
	LastUpdate *time.Time `json:"last_update,omitempty"`
	Stale      bool       `json:"stale"`
	Degraded   bool       `json:"degraded"` // baseline or stale data is shown
	InFlight   bool       `json:"in_flight"`
	Error      string     `json:"error,omitempty"`
}

// Board joins the catalog with one poller per category.
type Board struct {
	catalog *catalog.Catalog
	pollers map[catalog.Category]*Poller
}

// NewBoard creates a board. A category without a poller is served from
// catalog baselines.
func NewBoard(cat *catalog.Catalog, pollers map[catalog.Category]*Poller) *Board {
	return &Board{catalog: cat, pollers: pollers}
}

// Start starts every poller.
func (b *Board) Start(ctx context.Context) {
	for _, p := range b.pollers {
		p.Start(ctx)
	}
}

// Stop stops every poller.
func (b *Board) Stop() {
	for _, p := range b.pollers {
		p.Stop()
	}
}

// Instruments returns the merged rows of a category in catalog order.
func (b *Board) Instruments(category catalog.Category) ([]MergedInstrument, Status, error) {
	if category != catalog.Equity && category != catalog.Crypto {
		return nil, Status{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	p, ok := b.pollers[category]
	if !ok {
		return Merge(b.catalog.ByCategory(category), nil), Status{Degraded: true}, nil
	}

	snap := p.Snapshot()
	return Merge(b.catalog.ByCategory(category), snap.Quotes), statusOf(snap), nil
}

// Instrument returns the merged row for one symbol.
func (b *Board) Instrument(symbol string) (MergedInstrument, bool) {
	inst, ok := b.catalog.Lookup(symbol)
	if !ok {
		return MergedInstrument{}, false
	}
	var quotes Quotes
	if p, ok := b.pollers[inst.Category]; ok {
		quotes = p.Snapshot().Quotes
	}
	return Merge([]catalog.Instrument{inst}, quotes)[0], true
}

// Refresh forces an immediate fetch for a category.
func (b *Board) Refresh(ctx context.Context, category catalog.Category) error {
	p, ok := b.pollers[category]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return p.Refresh(ctx)
}

func statusOf(snap Snapshot) Status {
	st := Status{
		Stale:    snap.Stale,
		InFlight: snap.InFlight,
		Degraded: snap.Stale || snap.LastUpdate.IsZero(),
	}
	if !snap.LastUpdate.IsZero() {
		t := snap.LastUpdate
		st.LastUpdate = &t
	}
	if snap.Err != nil {
		st.Error = snap.Err.Error()
	}
	return st
}
