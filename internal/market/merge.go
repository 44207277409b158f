package market

import (
	"time"

	"borsa-dashboard-go/internal/catalog"
)

// MergedInstrument is a catalog entry with live fields overlaid.
type MergedInstrument struct {
	catalog.Instrument
	Live     bool       `json:"live"`
	QuotedAt *time.Time `json:"quoted_at,omitempty"`
}

// Merge overlays quotes on instruments. The result has exactly one row per
// instrument, in instrument order. Quotes for symbols not in instruments are
// ignored and instruments without a quote keep their baseline values.
func Merge(instruments []catalog.Instrument, quotes Quotes) []MergedInstrument {
	out := make([]MergedInstrument, 0, len(instruments))
	for _, inst := range instruments {
		m := MergedInstrument{Instrument: inst}
		if q, ok := quotes[inst.Symbol]; ok && q.Price.IsPositive() {
			m.Price = q.Price
			m.Change = q.ChangePct
			m.Volume = q.Volume
			if q.MarketCap.Valid {
				m.MarketCap = q.MarketCap.Decimal
			}
			m.Live = true
			quotedAt := q.FetchedAt
			m.QuotedAt = &quotedAt
		}
		out = append(out, m)
	}
	return out
}
