package subscription

import (
	"context"
	"fmt"
	"time"

	"borsa-dashboard-go/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExpirePlans returns every non-lifetime paid account whose plan has
// expired to the free tier. It reports how many accounts were changed.
func (w *Workflow) ExpirePlans(ctx context.Context) (int, error) {
	now := w.now()

	var expired []models.Account
	err := w.db.WithContext(ctx).
		Where("tier <> ? AND lifetime = ? AND plan_expires_at IS NOT NULL AND plan_expires_at <= ?", models.TierFree, false, now).
		Find(&expired).Error
	if err != nil {
		return 0, fmt.Errorf("failed to find expired plans: %w", err)
	}

	changed := 0
	for _, acc := range expired {
		updated := false
		err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Account{}).
				Where("id = ? AND tier = ? AND lifetime = ?", acc.ID, acc.Tier, false).
				Updates(map[string]interface{}{"tier": models.TierFree, "plan_expires_at": nil, "updated_at": now})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil
			}
			updated = true
			return audit(tx, models.AuditPlanExpired, acc.ID, "", map[string]interface{}{
				"from":       acc.Tier,
				"expired_at": acc.PlanExpiresAt,
			})
		})
		if err != nil {
			w.logger.Error("Failed to expire plan", zap.String("user_id", acc.ID), zap.Error(err))
			continue
		}
		if updated {
			changed++
		}
	}

	if changed > 0 {
		w.logger.Info("Expired plans", zap.Int("count", changed))
	}
	return changed, nil
}

// RunExpirySweeper calls ExpirePlans on every interval until ctx is done.
func (w *Workflow) RunExpirySweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.Info("Starting plan expiry sweeper", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping plan expiry sweeper")
			return
		case <-ticker.C:
			if _, err := w.ExpirePlans(ctx); err != nil {
				w.logger.Error("Plan expiry sweep failed", zap.Error(err))
			}
		}
	}
}
