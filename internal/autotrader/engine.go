package autotrader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"borsa-dashboard-go/internal/catalog"
	"borsa-dashboard-go/internal/config"
	"borsa-dashboard-go/internal/entitlement"
	"borsa-dashboard-go/internal/market"
	"borsa-dashboard-go/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Trade sides.
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// PriceBoard is the read side of the market board the engine trades on.
type PriceBoard interface {
	Instruments(category catalog.Category) ([]market.MergedInstrument, market.Status, error)
	Instrument(symbol string) (market.MergedInstrument, bool)
}

var _ PriceBoard = (*market.Board)(nil)

// Engine runs the paper trader for every user with an active panel.
// It never talks to an exchange; trades are recorded against live quotes.
type Engine struct {
	logger *zap.Logger
	cfg    *config.Trader
	board  PriceBoard
	db     *gorm.DB
	now    func() time.Time
}

// NewEngine creates a new paper trading engine.
func NewEngine(logger *zap.Logger, cfg *config.Trader, board PriceBoard, db *gorm.DB) *Engine {
	return &Engine{
		logger: logger,
		cfg:    cfg,
		board:  board,
		db:     db,
		now:    time.Now,
	}
}

// Run starts the engine's main loop.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	e.logger.Info("Starting paper trading loop", zap.Duration("interval", e.cfg.TickInterval))

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Stopping paper trading engine...")
			return
		case <-ticker.C:
			if err := e.Tick(ctx); err != nil {
				e.logger.Error("Trading tick failed", zap.Error(err))
			}
		}
	}
}

// Tick runs one trading round over all active panels. A failure for one user
// is logged and does not stop the others.
func (e *Engine) Tick(ctx context.Context) error {
	var active []models.TraderSettings
	if err := e.db.WithContext(ctx).Where("active = ?", true).Find(&active).Error; err != nil {
		return fmt.Errorf("failed to load active traders: %w", err)
	}

	for _, settings := range active {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := e.step(ctx, settings); err != nil {
			e.logger.Error("Trader step failed", zap.String("user_id", settings.UserID), zap.Error(err))
		}
	}
	return nil
}

func (e *Engine) step(ctx context.Context, settings models.TraderSettings) error {
	log := e.logger.With(zap.String("user_id", settings.UserID))

	var acc models.Account
	if err := e.db.WithContext(ctx).First(&acc, "id = ?", settings.UserID).Error; err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}

	// The plan may have lapsed since the panel was switched on.
	if !entitlement.Decide(entitlement.ViewerOf(&acc, e.now()), entitlement.AutomatedTrading).Allowed {
		log.Info("Plan no longer includes automated trading, deactivating")
		return e.db.WithContext(ctx).Model(&models.TraderSettings{}).
			Where("user_id = ?", settings.UserID).
			Update("active", false).Error
	}

	strategy := StrategyFor(settings)

	var pos models.PaperPosition
	err := e.db.WithContext(ctx).First(&pos, "user_id = ?", settings.UserID).Error
	switch {
	case err == nil:
		return e.manage(ctx, log, strategy, pos)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return e.enter(ctx, log, strategy, settings)
	default:
		return fmt.Errorf("failed to load position: %w", err)
	}
}

// manage closes the open position when the strategy says so.
func (e *Engine) manage(ctx context.Context, log *zap.Logger, strategy Strategy, pos models.PaperPosition) error {
	inst, ok := e.board.Instrument(pos.Symbol)
	if !ok || !inst.Live {
		log.Debug("No live quote for held instrument, waiting", zap.String("symbol", pos.Symbol))
		return nil
	}
	price := inst.Price.InexactFloat64()

	exit, reason := strategy.ShouldExit(pos, price)
	if !exit {
		return nil
	}

	proceeds := pos.Quantity * price * (1 - e.cfg.FeeRate)
	trade := models.PaperTrade{
		UserID:        pos.UserID,
		Symbol:        pos.Symbol,
		Type:          SideSell,
		Price:         price,
		Quantity:      pos.Quantity,
		QuoteQuantity: proceeds,
		Timestamp:     e.now().UnixMilli(),
		Strategy:      strategy.Name(),
		Profit:        proceeds - pos.Cost,
	}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND symbol = ?", pos.UserID, pos.Symbol).Delete(&models.PaperPosition{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Closed concurrently.
			return nil
		}
		return tx.Create(&trade).Error
	})
	if err != nil {
		return fmt.Errorf("failed to close position: %w", err)
	}

	log.Info("Closed paper position",
		zap.String("symbol", pos.Symbol),
		zap.String("reason", reason),
		zap.Float64("price", price),
		zap.Float64("profit", trade.Profit))
	return nil
}

// enter opens a position in the best scoring instrument of the user's universe.
func (e *Engine) enter(ctx context.Context, log *zap.Logger, strategy Strategy, settings models.TraderSettings) error {
	var candidates []market.MergedInstrument
	for _, category := range universe(settings.AssetMix) {
		rows, status, err := e.board.Instruments(category)
		if err != nil {
			return err
		}
		if status.Degraded {
			// No entries on baseline or stale prices.
			continue
		}
		for _, row := range rows {
			if row.Live {
				candidates = append(candidates, row)
			}
		}
	}
	if len(candidates) == 0 {
		log.Debug("No live candidates this round")
		return nil
	}

	best := findBest(StrategyContext{
		Logger:      log,
		Settings:    settings,
		Instruments: candidates,
		FeeRate:     e.cfg.FeeRate,
	}, strategy)
	if best == nil {
		log.Debug("No instrument qualifies", zap.String("strategy", strategy.Name()))
		return nil
	}

	price := best.Instrument.Price.InexactFloat64()
	quantity := settings.Budget * (1 - e.cfg.FeeRate) / price
	now := e.now()

	pos := models.PaperPosition{
		UserID:     settings.UserID,
		Symbol:     best.Instrument.Symbol,
		Quantity:   quantity,
		EntryPrice: price,
		Cost:       settings.Budget,
		OpenedAt:   now,
	}
	trade := models.PaperTrade{
		UserID:        settings.UserID,
		Symbol:        best.Instrument.Symbol,
		Type:          SideBuy,
		Price:         price,
		Quantity:      quantity,
		QuoteQuantity: settings.Budget,
		Timestamp:     now.UnixMilli(),
		Strategy:      strategy.Name(),
	}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&pos)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Create(&trade).Error
	})
	if err != nil {
		return fmt.Errorf("failed to open position: %w", err)
	}

	log.Info("Opened paper position",
		zap.String("symbol", pos.Symbol),
		zap.String("strategy", strategy.Name()),
		zap.Float64("price", price),
		zap.Float64("quantity", quantity))
	return nil
}
