package autotrader

import (
	"context"
	"testing"
	"time"

	"borsa-dashboard-go/internal/catalog"
	"borsa-dashboard-go/internal/config"
	"borsa-dashboard-go/internal/database"
	"borsa-dashboard-go/internal/market"
	"borsa-dashboard-go/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

// MockPriceBoard is a mock implementation of PriceBoard.
type MockPriceBoard struct {
	mock.Mock
}

func (m *MockPriceBoard) Instruments(category catalog.Category) ([]market.MergedInstrument, market.Status, error) {
	args := m.Called(category)
	rows, _ := args.Get(0).([]market.MergedInstrument)
	return rows, args.Get(1).(market.Status), args.Error(2)
}

func (m *MockPriceBoard) Instrument(symbol string) (market.MergedInstrument, bool) {
	args := m.Called(symbol)
	return args.Get(0).(market.MergedInstrument), args.Bool(1)
}

func testTraderConfig() *config.Trader {
	return &config.Trader{TickInterval: time.Second, FeeRate: 0.001, MinBudget: 100, MaxBudget: 100000}
}

func setupEngine(t *testing.T) (*Engine, *MockPriceBoard, *gorm.DB) {
	t.Helper()
	db := database.NewTestDatabase(t)
	board := new(MockPriceBoard)
	e := NewEngine(zap.NewNop(), testTraderConfig(), board, db)
	e.now = func() time.Time { return testNow }
	return e, board, db
}

func createAccount(t *testing.T, db *gorm.DB, tier models.Tier) *models.Account {
	t.Helper()
	expires := testNow.Add(24 * time.Hour)
	acc := &models.Account{
		ID:            uuid.NewString(),
		Email:         uuid.NewString() + "@example.com",
		PasswordHash:  "x",
		Tier:          tier,
		PlanExpiresAt: &expires,
	}
	require.NoError(t, db.Create(acc).Error)
	return acc
}

func activate(t *testing.T, db *gorm.DB, userID string, mix string, risk int) {
	t.Helper()
	require.NoError(t, db.Create(&models.TraderSettings{
		UserID:    userID,
		Active:    true,
		Budget:    1000,
		RiskLevel: risk,
		AssetMix:  mix,
	}).Error)
}

func TestEngine_Tick_OpensPosition(t *testing.T) {
	// Arrange
	e, board, db := setupEngine(t)
	acc := createAccount(t, db, models.TierUltimate)
	activate(t, db, acc.ID, MixCrypto, 50)

	board.On("Instruments", catalog.Crypto).Return([]market.MergedInstrument{
		row("BTC", "100", "2", catalog.Rise, 80),
		row("ETH", "50", "4", catalog.Rise, 90),
	}, market.Status{}, nil)

	// Act
	require.NoError(t, e.Tick(context.Background()))

	// Assert
	var pos models.PaperPosition
	require.NoError(t, db.First(&pos, "user_id = ?", acc.ID).Error)
	assert.Equal(t, "ETH", pos.Symbol)
	assert.InDelta(t, 1000*0.999/50, pos.Quantity, 1e-9)
	assert.InDelta(t, 1000.0, pos.Cost, 1e-9)

	var trades []models.PaperTrade
	require.NoError(t, db.Find(&trades, "user_id = ?", acc.ID).Error)
	require.Len(t, trades, 1)
	assert.Equal(t, SideBuy, trades[0].Type)
	assert.Equal(t, "Momentum", trades[0].Strategy)
	board.AssertExpectations(t)
}

func TestEngine_Tick_SkipsDegradedBoard(t *testing.T) {
	e, board, db := setupEngine(t)
	acc := createAccount(t, db, models.TierUltimate)
	activate(t, db, acc.ID, MixCrypto, 50)

	board.On("Instruments", catalog.Crypto).Return([]market.MergedInstrument{
		row("BTC", "100", "5", catalog.Rise, 80),
	}, market.Status{Degraded: true}, nil)

	require.NoError(t, e.Tick(context.Background()))

	var count int64
	db.Model(&models.PaperPosition{}).Count(&count)
	assert.Zero(t, count)
}

func TestEngine_Tick_ClosesPositionAtTakeProfit(t *testing.T) {
	// Arrange
	e, board, db := setupEngine(t)
	acc := createAccount(t, db, models.TierUltimate)
	activate(t, db, acc.ID, MixCrypto, 50)
	require.NoError(t, db.Create(&models.PaperPosition{
		UserID: acc.ID, Symbol: "BTC", Quantity: 10, EntryPrice: 100, Cost: 1000, OpenedAt: testNow,
	}).Error)

	board.On("Instrument", "BTC").Return(row("BTC", "110", "10", catalog.Rise, 80), true)

	// Act
	require.NoError(t, e.Tick(context.Background()))

	// Assert
	var count int64
	db.Model(&models.PaperPosition{}).Where("user_id = ?", acc.ID).Count(&count)
	assert.Zero(t, count)

	var sell models.PaperTrade
	require.NoError(t, db.First(&sell, "user_id = ? AND type = ?", acc.ID, SideSell).Error)
	assert.InDelta(t, 10*110*0.999-1000, sell.Profit, 1e-9)
}

func TestEngine_Tick_HoldsWithoutLiveQuote(t *testing.T) {
	e, board, db := setupEngine(t)
	acc := createAccount(t, db, models.TierUltimate)
	activate(t, db, acc.ID, MixCrypto, 50)
	require.NoError(t, db.Create(&models.PaperPosition{
		UserID: acc.ID, Symbol: "BTC", Quantity: 10, EntryPrice: 100, Cost: 1000, OpenedAt: testNow,
	}).Error)

	baseline := row("BTC", "200", "0", catalog.Rise, 80)
	baseline.Live = false
	board.On("Instrument", "BTC").Return(baseline, true)

	require.NoError(t, e.Tick(context.Background()))

	var count int64
	db.Model(&models.PaperPosition{}).Where("user_id = ?", acc.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEngine_Tick_DeactivatesLapsedPlan(t *testing.T) {
	e, board, db := setupEngine(t)
	acc := createAccount(t, db, models.TierPro)
	activate(t, db, acc.ID, MixMixed, 50)

	require.NoError(t, e.Tick(context.Background()))

	var settings models.TraderSettings
	require.NoError(t, db.First(&settings, "user_id = ?", acc.ID).Error)
	assert.False(t, settings.Active)
	board.AssertNotCalled(t, "Instruments", mock.Anything)
}
