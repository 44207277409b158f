package autotrader

import (
	"testing"
	"time"

	"borsa-dashboard-go/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeStatistics(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	ms := func(d time.Duration) int64 { return now.Add(-d).UnixMilli() }

	trades := []models.PaperTrade{
		{Type: SideBuy, Timestamp: ms(time.Hour)},
		{Type: SideSell, Timestamp: ms(time.Hour), Profit: 10},
		{Type: SideSell, Timestamp: ms(2 * time.Hour), Profit: -4},
		{Type: SideSell, Timestamp: ms(48 * time.Hour), Profit: 6},
	}

	stats := computeStatistics(trades, now)

	assert.Equal(t, int64(3), stats.AllTime.TotalTrades)
	assert.Equal(t, int64(2), stats.AllTime.ProfitableTrades)
	assert.InDelta(t, 2.0/3.0, stats.AllTime.WinRate, 1e-9)
	assert.InDelta(t, 12.0, stats.AllTime.TotalProfit, 1e-9)

	assert.Equal(t, int64(2), stats.Since24h.TotalTrades)
	assert.Equal(t, int64(1), stats.Since24h.ProfitableTrades)
	assert.InDelta(t, 0.5, stats.Since24h.WinRate, 1e-9)
	assert.InDelta(t, 6.0, stats.Since24h.TotalProfit, 1e-9)
}

func TestComputeStatistics_Empty(t *testing.T) {
	stats := computeStatistics(nil, time.Now())
	assert.Zero(t, stats.AllTime.WinRate)
	assert.Zero(t, stats.Since24h.TotalTrades)
}
