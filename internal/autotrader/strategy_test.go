package autotrader

import (
	"testing"

	"borsa-dashboard-go/internal/catalog"
	"borsa-dashboard-go/internal/market"
	"borsa-dashboard-go/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func row(symbol, price, change string, p catalog.Prediction, confidence int) market.MergedInstrument {
	return market.MergedInstrument{
		Instrument: catalog.Instrument{
			Symbol:     symbol,
			Name:       symbol,
			Category:   catalog.Crypto,
			Price:      decimal.RequireFromString(price),
			Change:     decimal.RequireFromString(change),
			Prediction: p,
			Confidence: confidence,
		},
		Live: true,
	}
}

func TestRiskBand(t *testing.T) {
	testCases := []struct {
		level    int
		expected string
	}{
		{0, "low"},
		{29, "low"},
		{30, "medium"},
		{69, "medium"},
		{70, "high"},
		{100, "high"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, RiskBand(tc.level), "level %d", tc.level)
	}
}

func TestStrategyFor(t *testing.T) {
	testCases := []struct {
		name     string
		settings models.TraderSettings
		expected string
	}{
		{"LowRisk", models.TraderSettings{RiskLevel: 10, AssetMix: MixMixed}, "Conservative"},
		{"ConservativeMix", models.TraderSettings{RiskLevel: 90, AssetMix: MixConservative}, "Conservative"},
		{"MediumRisk", models.TraderSettings{RiskLevel: 50, AssetMix: MixCrypto}, "Momentum"},
		{"AggressiveMix", models.TraderSettings{RiskLevel: 40, AssetMix: MixAggressive}, "Momentum"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StrategyFor(tc.settings).Name())
		})
	}
}

func TestConservativeStrategy_Score(t *testing.T) {
	s := &ConservativeStrategy{MinConfidence: 70, TakeProfit: 0.03, StopLoss: 0.02}

	_, ok := s.Score(row("A", "10", "1", catalog.Watch, 90))
	assert.False(t, ok, "watch predictions are skipped")

	_, ok = s.Score(row("B", "10", "1", catalog.Rise, 60))
	assert.False(t, ok, "low confidence is skipped")

	_, ok = s.Score(row("C", "10", "8", catalog.Rise, 90))
	assert.False(t, ok, "sharp movers are skipped")

	score, ok := s.Score(row("D", "10", "-2", catalog.Rise, 80))
	require.True(t, ok)
	assert.InDelta(t, 78.0, score, 1e-9)
}

func TestExitOnBands(t *testing.T) {
	pos := models.PaperPosition{EntryPrice: 100}
	s := &MomentumStrategy{TakeProfit: 0.05, StopLoss: 0.03}

	testCases := []struct {
		name   string
		price  float64
		exit   bool
		reason string
	}{
		{"Hold", 102, false, ""},
		{"TakeProfit", 105, true, "take_profit"},
		{"StopLoss", 97, true, "stop_loss"},
		{"ZeroPrice", 0, false, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			exit, reason := s.ShouldExit(pos, tc.price)
			assert.Equal(t, tc.exit, exit)
			assert.Equal(t, tc.reason, reason)
		})
	}
}

func TestFindBest(t *testing.T) {
	ctx := StrategyContext{Logger: zap.NewNop()}
	s := &MomentumStrategy{TakeProfit: 0.05, StopLoss: 0.03}

	t.Run("PicksHighestScore", func(t *testing.T) {
		ctx.Instruments = []market.MergedInstrument{
			row("SLOW", "10", "1", catalog.Rise, 90),
			row("FAST", "10", "6", catalog.Watch, 50),
			row("RISKY", "10", "20", catalog.Risky, 99),
			row("DOWN", "10", "-3", catalog.Rise, 99),
		}

		best := findBest(ctx, s)

		require.NotNil(t, best)
		assert.Equal(t, "FAST", best.Instrument.Symbol)
		assert.InDelta(t, 3.0, best.Score, 1e-9)
	})

	t.Run("TieKeepsEarlier", func(t *testing.T) {
		ctx.Instruments = []market.MergedInstrument{
			row("FIRST", "10", "2", catalog.Rise, 50),
			row("SECOND", "10", "2", catalog.Rise, 50),
		}

		best := findBest(ctx, s)

		require.NotNil(t, best)
		assert.Equal(t, "FIRST", best.Instrument.Symbol)
	})

	t.Run("NothingQualifies", func(t *testing.T) {
		ctx.Instruments = []market.MergedInstrument{
			row("ZERO", "0", "5", catalog.Rise, 90),
			row("DOWN", "10", "-1", catalog.Rise, 90),
		}

		assert.Nil(t, findBest(ctx, s))
	})
}

func TestUniverse(t *testing.T) {
	assert.Equal(t, []catalog.Category{catalog.Crypto}, universe(MixCrypto))
	assert.Equal(t, []catalog.Category{catalog.Equity}, universe(MixStocks))
	assert.Len(t, universe(MixMixed), 2)
}
