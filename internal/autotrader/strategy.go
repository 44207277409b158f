package autotrader

import (
	"sync"

	"borsa-dashboard-go/internal/catalog"
	"borsa-dashboard-go/internal/market"
	"borsa-dashboard-go/internal/models"
	"go.uber.org/zap"
)

// Asset mixes a user can pick for the trader.
const (
	MixMixed        = "mixed"
	MixCrypto       = "crypto"
	MixStocks       = "stocks"
	MixConservative = "conservative"
	MixAggressive   = "aggressive"
)

// ValidMix reports whether mix is a known asset mix.
func ValidMix(mix string) bool {
	switch mix {
	case MixMixed, MixCrypto, MixStocks, MixConservative, MixAggressive:
		return true
	}
	return false
}

// RiskBand names the risk slider position: low below 30, medium below 70,
// high otherwise.
func RiskBand(level int) string {
	switch {
	case level < 30:
		return "low"
	case level < 70:
		return "medium"
	default:
		return "high"
	}
}

// StrategyContext provides the strategy with what it needs for one decision.
type StrategyContext struct {
	Logger      *zap.Logger
	Settings    models.TraderSettings
	Instruments []market.MergedInstrument
	FeeRate     float64
}

// Strategy decides which instrument to enter and when to leave it.
type Strategy interface {
	// Name returns the unique name of the strategy.
	Name() string

	// Score rates an instrument as an entry. ok is false when the
	// instrument should not be bought at all.
	Score(inst market.MergedInstrument) (score float64, ok bool)

	// ShouldExit reports whether a position should be closed at price.
	ShouldExit(pos models.PaperPosition, price float64) (exit bool, reason string)
}

// ConservativeStrategy only buys instruments with a confident rise outlook
// and takes small profits.
type ConservativeStrategy struct {
	MinConfidence int
	TakeProfit    float64 // fraction, e.g. 0.03
	StopLoss      float64
}

func (s *ConservativeStrategy) Name() string {
	return "Conservative"
}

func (s *ConservativeStrategy) Score(inst market.MergedInstrument) (float64, bool) {
	if inst.Prediction != catalog.Rise || inst.Confidence < s.MinConfidence {
		return 0, false
	}
	change := inst.Change.InexactFloat64()
	// Avoid chasing instruments that already moved sharply.
	if change > 5 || change < -5 {
		return 0, false
	}
	return float64(inst.Confidence) - abs(change), true
}

func (s *ConservativeStrategy) ShouldExit(pos models.PaperPosition, price float64) (bool, string) {
	return exitOnBands(pos, price, s.TakeProfit, s.StopLoss)
}

// MomentumStrategy buys whatever is rising fastest, weighted by the catalog
// confidence, and lets winners run further.
type MomentumStrategy struct {
	TakeProfit float64
	StopLoss   float64
}

func (s *MomentumStrategy) Name() string {
	return "Momentum"
}

func (s *MomentumStrategy) Score(inst market.MergedInstrument) (float64, bool) {
	if inst.Prediction == catalog.Risky {
		return 0, false
	}
	change := inst.Change.InexactFloat64()
	if change <= 0 {
		return 0, false
	}
	return change * float64(inst.Confidence) / 100, true
}

func (s *MomentumStrategy) ShouldExit(pos models.PaperPosition, price float64) (bool, string) {
	return exitOnBands(pos, price, s.TakeProfit, s.StopLoss)
}

func exitOnBands(pos models.PaperPosition, price, takeProfit, stopLoss float64) (bool, string) {
	if pos.EntryPrice <= 0 || price <= 0 {
		return false, ""
	}
	move := price/pos.EntryPrice - 1
	switch {
	case move >= takeProfit:
		return true, "take_profit"
	case move <= -stopLoss:
		return true, "stop_loss"
	}
	return false, ""
}

// StrategyFor picks the strategy matching a user's risk level and mix.
func StrategyFor(settings models.TraderSettings) Strategy {
	switch {
	case settings.AssetMix == MixConservative || RiskBand(settings.RiskLevel) == "low":
		return &ConservativeStrategy{MinConfidence: 70, TakeProfit: 0.03, StopLoss: 0.02}
	case settings.AssetMix == MixAggressive || RiskBand(settings.RiskLevel) == "high":
		return &MomentumStrategy{TakeProfit: 0.10, StopLoss: 0.06}
	default:
		return &MomentumStrategy{TakeProfit: 0.05, StopLoss: 0.03}
	}
}

// universe returns the categories a mix trades in.
func universe(mix string) []catalog.Category {
	switch mix {
	case MixCrypto:
		return []catalog.Category{catalog.Crypto}
	case MixStocks:
		return []catalog.Category{catalog.Equity}
	default:
		return []catalog.Category{catalog.Equity, catalog.Crypto}
	}
}

// tradeOpportunity holds the best entry found in a scouting round.
type tradeOpportunity struct {
	Instrument market.MergedInstrument
	Score      float64
}

// findBest scores every instrument concurrently and returns the highest
// scoring one, or nil when nothing qualifies. Ties keep the earlier
// instrument so the result does not depend on goroutine scheduling.
func findBest(ctx StrategyContext, strategy Strategy) *tradeOpportunity {
	type scored struct {
		index int
		opp   tradeOpportunity
	}

	var wg sync.WaitGroup
	opportunities := make(chan scored, len(ctx.Instruments))

	for i, inst := range ctx.Instruments {
		wg.Add(1)
		go func(i int, inst market.MergedInstrument) {
			defer wg.Done()
			if !inst.Price.IsPositive() {
				return
			}
			score, ok := strategy.Score(inst)
			if !ok {
				return
			}
			ctx.Logger.Debug("Candidate", zap.String("symbol", inst.Symbol), zap.Float64("score", score))
			opportunities <- scored{index: i, opp: tradeOpportunity{Instrument: inst, Score: score}}
		}(i, inst)
	}

	go func() {
		wg.Wait()
		close(opportunities)
	}()

	var best *scored
	for s := range opportunities {
		if best == nil || s.opp.Score > best.opp.Score || (s.opp.Score == best.opp.Score && s.index < best.index) {
			current := s
			best = &current
		}
	}
	if best == nil {
		return nil
	}
	return &best.opp
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
