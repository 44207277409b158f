package subscription

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"borsa-dashboard-go/internal/models"
)

// codeAlphabet omits characters that are easy to misread (0/O, 1/I/L).
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// MintCodes creates n unused access codes for tier.
func (w *Workflow) MintCodes(ctx context.Context, n int, tier models.Tier, adminGrant bool) ([]models.AccessCode, error) {
	if !tier.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTier, tier)
	}
	if n <= 0 {
		return nil, fmt.Errorf("code count must be positive, got %d", n)
	}

	codes := make([]models.AccessCode, 0, n)
	for i := 0; i < n; i++ {
		code, err := newCode()
		if err != nil {
			return nil, err
		}
		codes = append(codes, models.AccessCode{Code: code, Tier: tier, AdminGrant: adminGrant})
	}

	if err := w.db.WithContext(ctx).Create(&codes).Error; err != nil {
		return nil, fmt.Errorf("failed to store access codes: %w", err)
	}
	return codes, nil
}

// newCode returns a code of the form XXXX-XXXX-XXXX.
func newCode() (string, error) {
	var b strings.Builder
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < 12; i++ {
		if i > 0 && i%4 == 0 {
			b.WriteByte('-')
		}
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate access code: %w", err)
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}
