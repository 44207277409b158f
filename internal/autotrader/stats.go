package autotrader

import (
	"time"

	"borsa-dashboard-go/internal/models"
)

// StatsDetail holds calculated statistics for a given period.
type StatsDetail struct {
	TotalTrades      int64   `json:"total_trades"`
	ProfitableTrades int64   `json:"profitable_trades"`
	WinRate          float64 `json:"win_rate"`
	TotalProfit      float64 `json:"total_profit"`
}

// Statistics summarises a user's closed paper trades.
type Statistics struct {
	Since24h StatsDetail `json:"since_24h"`
	AllTime  StatsDetail `json:"all_time"`
}

// computeStatistics folds closing trades into 24h and all-time figures.
// Only trades that realised a profit or loss count.
func computeStatistics(trades []models.PaperTrade, now time.Time) Statistics {
	since24h := now.Add(-24 * time.Hour)

	var stats Statistics
	for _, trade := range trades {
		if trade.Type != SideSell {
			continue
		}
		add(&stats.AllTime, trade.Profit)

		tradeTime := time.UnixMilli(trade.Timestamp)
		if tradeTime.After(since24h) {
			add(&stats.Since24h, trade.Profit)
		}
	}

	finish(&stats.AllTime)
	finish(&stats.Since24h)
	return stats
}

func add(d *StatsDetail, profit float64) {
	d.TotalTrades++
	if profit > 0 {
		d.ProfitableTrades++
	}
	d.TotalProfit += profit
}

func finish(d *StatsDetail) {
	if d.TotalTrades > 0 {
		d.WinRate = float64(d.ProfitableTrades) / float64(d.TotalTrades)
	}
}
