package auth

import (
	"context"
	"testing"

	"borsa-dashboard-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	ctx := context.Background()
	s, _, db := setupTest(t)
	acc := signUp(t, s, "ada@example.com", "ada")
	res, err := s.SignIn(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)

	session := NewSession(s, res.Token)
	var seen []models.Tier
	unsubscribe := session.Subscribe(func(a *models.Account) {
		if a == nil {
			seen = append(seen, "")
			return
		}
		seen = append(seen, a.Tier)
	})

	// Signed in as free.
	require.NoError(t, session.Refresh(ctx))
	require.NotNil(t, session.Current())
	assert.Equal(t, models.TierFree, session.Tier())

	// Refresh without a change does not notify.
	require.NoError(t, session.Refresh(ctx))
	assert.Equal(t, []models.Tier{models.TierFree}, seen)

	// Tier changes elsewhere show up on the next refresh.
	require.NoError(t, db.Model(&models.Account{}).Where("id = ?", acc.ID).Update("tier", models.TierPro).Error)
	require.NoError(t, session.Refresh(ctx))
	assert.Equal(t, models.TierPro, session.Tier())
	assert.Equal(t, []models.Tier{models.TierFree, models.TierPro}, seen)

	// Signing out elsewhere clears the session.
	unsubscribe()
	require.NoError(t, s.SignOut(ctx, res.Token))
	require.NoError(t, session.Refresh(ctx))
	assert.Nil(t, session.Current())
	assert.Equal(t, models.TierFree, session.Tier())
	assert.Len(t, seen, 2, "unsubscribed callbacks are not called")
}

func TestSession_Anonymous(t *testing.T) {
	s, _, _ := setupTest(t)
	session := NewSession(s, "")

	require.NoError(t, session.Refresh(context.Background()))

	assert.Nil(t, session.Current())
	assert.Equal(t, models.TierFree, session.Tier())
}
