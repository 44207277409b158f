// Package subscription moves accounts between tiers through admin-approved
// payment requests, single-use access codes and self-service downgrades.
package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"borsa-dashboard-go/internal/config"
	"borsa-dashboard-go/internal/entitlement"
	"borsa-dashboard-go/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Workflow is the subscription state machine. All transitions are guarded
// by conditional updates so a concurrent actor can never resolve the same
// request or redeem the same code twice.
type Workflow struct {
	db         *gorm.DB
	logger     *zap.Logger
	planPeriod time.Duration
	now        func() time.Time
}

// NewWorkflow creates a workflow over db.
func NewWorkflow(db *gorm.DB, cfg *config.Subscription, logger *zap.Logger) *Workflow {
	return &Workflow{
		db:         db,
		logger:     logger.Named("subscription"),
		planPeriod: cfg.PlanPeriod,
		now:        time.Now,
	}
}

// Submit opens a payment request for tier. If the user already has a pending
// request for the same tier that request is returned; a pending request for
// another tier blocks the new one. Resolved requests never block.
func (w *Workflow) Submit(ctx context.Context, userID string, tier models.Tier) (*models.PaymentRequest, error) {
	if !tier.Paid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTier, tier)
	}

	var out models.PaymentRequest
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		acc, err := loadAccount(tx, userID)
		if err != nil {
			return err
		}
		// A lapsed plan counts as free even before the sweeper resets it.
		if entitlement.EffectiveTier(acc, w.now()) == tier {
			return ErrSameTier
		}

		var pending models.PaymentRequest
		err = tx.Where("user_id = ? AND status = ?", userID, models.StatusPending).First(&pending).Error
		switch {
		case err == nil && pending.RequestedTier == tier:
			out = pending
			return nil
		case err == nil:
			return ErrRequestPending
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to look up pending requests: %w", err)
		}

		out = models.PaymentRequest{
			ID:            uuid.NewString(),
			UserID:        userID,
			RequestedTier: tier,
			Status:        models.StatusPending,
		}
		if err := tx.Create(&out).Error; err != nil {
			return fmt.Errorf("failed to create payment request: %w", err)
		}
		return audit(tx, models.AuditRequestSubmitted, userID, out.ID, map[string]interface{}{
			"requested_tier": tier,
			"current_tier":   acc.Tier,
		})
	})
	if err != nil {
		return nil, err
	}

	w.logger.Info("Payment request submitted", zap.String("user_id", userID), zap.String("request_id", out.ID), zap.String("tier", string(tier)))
	return &out, nil
}

// Approve resolves a pending request and moves the requester to its tier
// for one plan period.
func (w *Workflow) Approve(ctx context.Context, adminID, requestID string) (*models.PaymentRequest, error) {
	return w.resolve(ctx, adminID, requestID, models.StatusApproved)
}

// Reject resolves a pending request without touching the account.
func (w *Workflow) Reject(ctx context.Context, adminID, requestID string) (*models.PaymentRequest, error) {
	return w.resolve(ctx, adminID, requestID, models.StatusRejected)
}

func (w *Workflow) resolve(ctx context.Context, adminID, requestID string, status models.RequestStatus) (*models.PaymentRequest, error) {
	var req models.PaymentRequest
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireAdmin(tx, adminID); err != nil {
			return err
		}

		if err := tx.First(&req, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoPendingRequest
			}
			return fmt.Errorf("failed to load payment request: %w", err)
		}
		if req.Status.Terminal() {
			return ErrAlreadyResolved
		}

		now := w.now()
		res := tx.Model(&models.PaymentRequest{}).
			Where("id = ? AND status = ?", requestID, models.StatusPending).
			Updates(map[string]interface{}{"status": status, "resolved_by": adminID, "updated_at": now})
		if res.Error != nil {
			return fmt.Errorf("failed to update payment request: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyResolved
		}
		req.Status = status
		req.ResolvedBy = &adminID
		req.UpdatedAt = now

		kind := models.AuditRequestRejected
		if status == models.StatusApproved {
			kind = models.AuditRequestApproved
			expires := now.Add(w.planPeriod)
			res := tx.Model(&models.Account{}).
				Where("id = ?", req.UserID).
				Updates(map[string]interface{}{
					"tier":            req.RequestedTier,
					"plan_expires_at": expires,
					"lifetime":        false,
					"updated_at":      now,
				})
			if res.Error != nil {
				return fmt.Errorf("failed to update account: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrAccountNotFound
			}
		}
		return audit(tx, kind, req.UserID, req.ID, map[string]interface{}{
			"requested_tier": req.RequestedTier,
			"resolved_by":    adminID,
		})
	})
	if err != nil {
		return nil, err
	}

	w.logger.Info("Payment request resolved",
		zap.String("request_id", req.ID),
		zap.String("status", string(status)),
		zap.String("admin_id", adminID),
	)
	return &req, nil
}

// Redeem burns an access code and grants its tier for life, plus the admin
// role for admin codes. Marking the code and updating the account happen in
// one transaction; if the account update fails neither change is kept and a
// failure is recorded in the audit log.
func (w *Workflow) Redeem(ctx context.Context, userID, code string) (*models.Account, error) {
	if code == "" {
		return nil, ErrInvalidCode
	}

	var acc models.Account
	var grant models.AccessCode
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&grant, "code = ?", code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidCode
			}
			return fmt.Errorf("failed to load access code: %w", err)
		}
		if grant.Used {
			return ErrCodeUsed
		}

		now := w.now()
		res := tx.Model(&models.AccessCode{}).
			Where("code = ? AND used = ?", code, false).
			Updates(map[string]interface{}{"used": true, "used_by": userID, "used_at": now})
		if res.Error != nil {
			return fmt.Errorf("failed to mark access code used: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrCodeUsed
		}

		updates := map[string]interface{}{
			"tier":            grant.Tier,
			"lifetime":        true,
			"plan_expires_at": nil,
			"updated_at":      now,
		}
		if grant.AdminGrant {
			updates["is_admin"] = true
		}
		res = tx.Model(&models.Account{}).Where("id = ?", userID).Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("%w: %v", ErrRedeemFailed, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %v", ErrRedeemFailed, ErrAccountNotFound)
		}

		if err := tx.First(&acc, "id = ?", userID).Error; err != nil {
			return fmt.Errorf("failed to reload account: %w", err)
		}
		return audit(tx, models.AuditCodeRedeemed, userID, code, map[string]interface{}{
			"tier":        grant.Tier,
			"admin_grant": grant.AdminGrant,
		})
	})
	if err != nil {
		if errors.Is(err, ErrRedeemFailed) {
			w.logger.Error("Access code redemption failed", zap.String("user_id", userID), zap.Error(err))
			if auditErr := audit(w.db.WithContext(ctx), models.AuditCodeRedeemFailed, userID, code, map[string]interface{}{
				"error": err.Error(),
			}); auditErr != nil {
				w.logger.Error("Failed to record redemption failure", zap.Error(auditErr))
			}
		}
		return nil, err
	}

	w.logger.Info("Access code redeemed", zap.String("user_id", userID), zap.String("tier", string(grant.Tier)), zap.Bool("admin_grant", grant.AdminGrant))
	return &acc, nil
}

// Downgrade moves an account to a lower tier. Free accounts cannot
// downgrade.
func (w *Workflow) Downgrade(ctx context.Context, userID string, to models.Tier) (*models.Account, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTier, to)
	}

	var acc models.Account
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := loadAccount(tx, userID)
		if err != nil {
			return err
		}
		if to.Rank() >= entitlement.EffectiveTier(current, w.now()).Rank() {
			return ErrInvalidDowngrade
		}

		updates := map[string]interface{}{"tier": to, "updated_at": w.now()}
		if to == models.TierFree {
			updates["plan_expires_at"] = nil
			updates["lifetime"] = false
		}
		res := tx.Model(&models.Account{}).
			Where("id = ? AND tier = ?", userID, current.Tier).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to downgrade account: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInvalidDowngrade
		}

		if err := tx.First(&acc, "id = ?", userID).Error; err != nil {
			return fmt.Errorf("failed to reload account: %w", err)
		}
		return audit(tx, models.AuditPlanDowngraded, userID, "", map[string]interface{}{
			"from": current.Tier,
			"to":   to,
		})
	})
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// ListPending returns pending requests, oldest first. Admin only.
func (w *Workflow) ListPending(ctx context.Context, adminID string) ([]models.PaymentRequest, error) {
	return w.listForAdmin(ctx, adminID, true)
}

// ListAll returns every request, newest first. Admin only.
func (w *Workflow) ListAll(ctx context.Context, adminID string) ([]models.PaymentRequest, error) {
	return w.listForAdmin(ctx, adminID, false)
}

func (w *Workflow) listForAdmin(ctx context.Context, adminID string, pendingOnly bool) ([]models.PaymentRequest, error) {
	db := w.db.WithContext(ctx)
	if err := requireAdmin(db, adminID); err != nil {
		return nil, err
	}

	q := db.Model(&models.PaymentRequest{})
	if pendingOnly {
		q = q.Where("status = ?", models.StatusPending).Order("created_at asc")
	} else {
		q = q.Order("created_at desc")
	}

	var out []models.PaymentRequest
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment requests: %w", err)
	}
	return out, nil
}

// ListForUser returns a user's own requests, newest first.
func (w *Workflow) ListForUser(ctx context.Context, userID string) ([]models.PaymentRequest, error) {
	var out []models.PaymentRequest
	err := w.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payment requests: %w", err)
	}
	return out, nil
}

func loadAccount(tx *gorm.DB, userID string) (*models.Account, error) {
	var acc models.Account
	if err := tx.First(&acc, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return &acc, nil
}

func requireAdmin(tx *gorm.DB, adminID string) error {
	acc, err := loadAccount(tx, adminID)
	if errors.Is(err, ErrAccountNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return err
	}
	if !acc.IsAdmin {
		return ErrForbidden
	}
	return nil
}

func audit(tx *gorm.DB, kind, userID, subject string, details map[string]interface{}) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}
	event := models.AuditEvent{
		Kind:    kind,
		UserID:  userID,
		Subject: subject,
		Details: datatypes.JSON(payload),
	}
	if err := tx.Create(&event).Error; err != nil {
		return fmt.Errorf("failed to write audit event: %w", err)
	}
	return nil
}
