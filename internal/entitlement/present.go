package entitlement

import (
	"time"

	"borsa-dashboard-go/internal/catalog"
	"borsa-dashboard-go/internal/market"
	"github.com/shopspring/decimal"
)

// InstrumentView is a merged instrument with gated fields resolved for one
// viewer. Masked fields are nil and their Gate carries the prompt.
type InstrumentView struct {
	Symbol     string               `json:"symbol"`
	Name       string               `json:"name"`
	Category   catalog.Category     `json:"category"`
	Sector     string               `json:"sector"`
	Price      decimal.Decimal      `json:"price"`
	Change     decimal.Decimal      `json:"change"`
	Volume     decimal.Decimal      `json:"volume"`
	MarketCap  decimal.Decimal      `json:"market_cap"`
	Live       bool                 `json:"live"`
	QuotedAt   *time.Time           `json:"quoted_at,omitempty"`
	Prediction *catalog.Prediction  `json:"prediction"`
	Confidence *int                 `json:"confidence"`
	Sentiment  *string              `json:"sentiment"`
	Gates      map[Feature]Decision `json:"gates"`
}

// Present resolves rows for a viewer.
func Present(v Viewer, rows []market.MergedInstrument) []InstrumentView {
	prediction := Decide(v, Prediction)
	sentiment := Decide(v, Sentiment)
	gates := map[Feature]Decision{
		Prediction: prediction,
		Sentiment:  sentiment,
	}

	out := make([]InstrumentView, 0, len(rows))
	for _, r := range rows {
		view := InstrumentView{
			Symbol:    r.Symbol,
			Name:      r.Name,
			Category:  r.Category,
			Sector:    r.Sector,
			Price:     r.Price,
			Change:    r.Change,
			Volume:    r.Volume,
			MarketCap: r.MarketCap,
			Live:      r.Live,
			QuotedAt:  r.QuotedAt,
			Gates:     gates,
		}
		if prediction.Allowed {
			p, c := r.Prediction, r.Confidence
			view.Prediction = &p
			view.Confidence = &c
		}
		if sentiment.Allowed {
			s := r.Sentiment
			view.Sentiment = &s
		}
		out = append(out, view)
	}
	return out
}
