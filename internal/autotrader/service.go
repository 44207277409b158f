package autotrader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"borsa-dashboard-go/internal/config"
	"borsa-dashboard-go/internal/entitlement"
	"borsa-dashboard-go/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotEntitled     = errors.New("automated trading requires the ultimate plan")
	ErrInvalidBudget   = errors.New("budget out of range")
	ErrInvalidRisk     = errors.New("risk level must be between 0 and 100")
	ErrInvalidAssetMix = errors.New("unknown asset mix")
)

// Defaults for a panel the user has never configured.
const (
	DefaultBudget    = 1000
	DefaultRiskLevel = 50
)

// SettingsInput holds the editable trader settings.
type SettingsInput struct {
	Budget    float64 `json:"budget"`
	RiskLevel int     `json:"risk_level"`
	AssetMix  string  `json:"asset_mix"`
}

// Overview is what the trader panel shows.
type Overview struct {
	Settings   models.TraderSettings `json:"settings"`
	RiskBand   string                `json:"risk_band"`
	Strategy   string                `json:"strategy"`
	Position   *models.PaperPosition `json:"position,omitempty"`
	Statistics Statistics            `json:"statistics"`
	Recent     []models.PaperTrade   `json:"recent_trades"`
	Timestamp  int64                 `json:"timestamp"`
}

// Service manages trader settings and reads trading history.
// Every operation requires the account to be entitled to automated trading.
type Service struct {
	db     *gorm.DB
	cfg    *config.Trader
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a trader service.
func NewService(db *gorm.DB, cfg *config.Trader, logger *zap.Logger) *Service {
	return &Service{db: db, cfg: cfg, logger: logger, now: time.Now}
}

func (s *Service) authorize(acc *models.Account) error {
	if acc == nil || !entitlement.Decide(entitlement.ViewerOf(acc, s.now()), entitlement.AutomatedTrading).Allowed {
		return ErrNotEntitled
	}
	return nil
}

// BudgetBounds returns the accepted budget range.
func (s *Service) BudgetBounds() (lo, hi decimal.Decimal) {
	return decimal.NewFromFloat(s.cfg.MinBudget), decimal.NewFromFloat(s.cfg.MaxBudget)
}

// Settings returns the user's settings, or the defaults when none are stored.
func (s *Service) Settings(ctx context.Context, acc *models.Account) (*models.TraderSettings, error) {
	if err := s.authorize(acc); err != nil {
		return nil, err
	}
	return s.settings(ctx, acc.ID)
}

func (s *Service) settings(ctx context.Context, userID string) (*models.TraderSettings, error) {
	var settings models.TraderSettings
	err := s.db.WithContext(ctx).First(&settings, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.TraderSettings{
			UserID:    userID,
			Budget:    DefaultBudget,
			RiskLevel: DefaultRiskLevel,
			AssetMix:  MixMixed,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load trader settings: %w", err)
	}
	return &settings, nil
}

// UpdateSettings validates and stores new settings. The active flag is kept.
func (s *Service) UpdateSettings(ctx context.Context, acc *models.Account, in SettingsInput) (*models.TraderSettings, error) {
	if err := s.authorize(acc); err != nil {
		return nil, err
	}
	if in.Budget < s.cfg.MinBudget || in.Budget > s.cfg.MaxBudget {
		return nil, fmt.Errorf("%w: %.2f not in [%.2f, %.2f]", ErrInvalidBudget, in.Budget, s.cfg.MinBudget, s.cfg.MaxBudget)
	}
	if in.RiskLevel < 0 || in.RiskLevel > 100 {
		return nil, ErrInvalidRisk
	}
	if !ValidMix(in.AssetMix) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAssetMix, in.AssetMix)
	}

	settings := models.TraderSettings{
		UserID:    acc.ID,
		Budget:    in.Budget,
		RiskLevel: in.RiskLevel,
		AssetMix:  in.AssetMix,
		UpdatedAt: s.now(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"budget", "risk_level", "asset_mix", "updated_at"}),
	}).Create(&settings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save trader settings: %w", err)
	}
	return s.settings(ctx, acc.ID)
}

// SetActive switches the trader on or off.
func (s *Service) SetActive(ctx context.Context, acc *models.Account, active bool) (*models.TraderSettings, error) {
	if err := s.authorize(acc); err != nil {
		return nil, err
	}
	settings, err := s.settings(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	settings.Active = active
	settings.UpdatedAt = s.now()
	if err := s.db.WithContext(ctx).Save(settings).Error; err != nil {
		return nil, fmt.Errorf("failed to save trader settings: %w", err)
	}

	s.logger.Info("Trader toggled", zap.String("user_id", acc.ID), zap.Bool("active", active))
	return settings, nil
}

// Overview returns settings, the open position, statistics and the most
// recent trades.
func (s *Service) Overview(ctx context.Context, acc *models.Account, recent int) (*Overview, error) {
	if err := s.authorize(acc); err != nil {
		return nil, err
	}
	settings, err := s.settings(ctx, acc.ID)
	if err != nil {
		return nil, err
	}

	ov := &Overview{
		Settings:  *settings,
		RiskBand:  RiskBand(settings.RiskLevel),
		Strategy:  StrategyFor(*settings).Name(),
		Recent:    []models.PaperTrade{},
		Timestamp: s.now().UnixMilli(),
	}

	var pos models.PaperPosition
	err = s.db.WithContext(ctx).First(&pos, "user_id = ?", acc.ID).Error
	switch {
	case err == nil:
		ov.Position = &pos
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to load position: %w", err)
	}

	var trades []models.PaperTrade
	if err := s.db.WithContext(ctx).Where("user_id = ?", acc.ID).Order("timestamp desc").Find(&trades).Error; err != nil {
		return nil, fmt.Errorf("failed to load trades: %w", err)
	}
	ov.Statistics = computeStatistics(trades, s.now())
	if len(trades) > recent {
		trades = trades[:recent]
	}
	ov.Recent = append(ov.Recent, trades...)
	return ov, nil
}
