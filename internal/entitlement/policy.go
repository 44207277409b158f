// Package entitlement decides, from a viewer's subscription tier, which
// instrument fields are shown and which features can be reached. Every
// gated view consults this table instead of branching on tiers itself.
package entitlement

import (
	"time"

	"borsa-dashboard-go/internal/models"
)

// Visibility is the resolved state of a feature for a tier.
type Visibility string

const (
	Visible Visibility = "visible"
	Masked  Visibility = "masked" // value withheld, placeholder shown
	Locked  Visibility = "locked" // feature unreachable
)

// Feature is a gated field or panel.
type Feature string

const (
	Prediction       Feature = "prediction" // label and confidence
	Sentiment        Feature = "sentiment"
	AdvancedAnalysis Feature = "advanced_analysis"
	News             Feature = "news"
	AutomatedTrading Feature = "automated_trading"
	Wishlist         Feature = "wishlist"
	Notifications    Feature = "notifications"
)

// Features lists every gated feature in display order.
var Features = []Feature{Prediction, Sentiment, AdvancedAnalysis, News, AutomatedTrading, Wishlist, Notifications}

// Prompt keys shown next to a gated feature.
const (
	PromptSignIn          = "sign_in"
	PromptUpgradePro      = "upgrade_pro"
	PromptUpgradeUltimate = "upgrade_ultimate"
)

var table = map[models.Tier]map[Feature]Visibility{
	models.TierFree: {
		Prediction:       Masked,
		Sentiment:        Masked,
		AdvancedAnalysis: Locked,
		News:             Locked,
		AutomatedTrading: Locked,
		Wishlist:         Visible,
		Notifications:    Visible,
	},
	models.TierPro: {
		Prediction:       Visible,
		Sentiment:        Visible,
		AdvancedAnalysis: Visible,
		News:             Locked,
		AutomatedTrading: Locked,
		Wishlist:         Visible,
		Notifications:    Visible,
	},
	models.TierUltimate: {
		Prediction:       Visible,
		Sentiment:        Visible,
		AdvancedAnalysis: Visible,
		News:             Visible,
		AutomatedTrading: Visible,
		Wishlist:         Visible,
		Notifications:    Visible,
	},
}

// accountOnly features act on per-user rows and need a signed-in viewer.
var accountOnly = map[Feature]bool{
	Wishlist:         true,
	Notifications:    true,
	AutomatedTrading: true,
}

// VisibilityFor returns the visibility of feature at tier. Unknown tiers and
// unknown features resolve to the most restrictive answer.
func VisibilityFor(tier models.Tier, feature Feature) Visibility {
	row, ok := table[tier]
	if !ok {
		row = table[models.TierFree]
	}
	v, ok := row[feature]
	if !ok {
		return Locked
	}
	return v
}

// Viewer is whoever is looking at a view.
type Viewer struct {
	SignedIn bool
	Tier     models.Tier
}

// Anonymous is a viewer without an account.
var Anonymous = Viewer{Tier: models.TierFree}

// ViewerOf resolves the viewer for acc at now. A nil account is anonymous and
// a paid plan past its expiry counts as free.
func ViewerOf(acc *models.Account, now time.Time) Viewer {
	if acc == nil {
		return Anonymous
	}
	return Viewer{SignedIn: true, Tier: EffectiveTier(acc, now)}
}

// EffectiveTier is the tier acc is entitled to at now.
func EffectiveTier(acc *models.Account, now time.Time) models.Tier {
	if !acc.Tier.Valid() {
		return models.TierFree
	}
	if acc.Tier.Paid() && !acc.Lifetime && acc.PlanExpiresAt != nil && !now.Before(*acc.PlanExpiresAt) {
		return models.TierFree
	}
	return acc.Tier
}

// Decision is the outcome of a gate check, with the prompt to show when the
// feature is not fully available.
type Decision struct {
	Feature    Feature    `json:"feature"`
	Visibility Visibility `json:"visibility"`
	Allowed    bool       `json:"allowed"`
	Prompt     string     `json:"prompt,omitempty"`
}

// Decide applies the table to a viewer. Anonymous viewers get the same
// visibility as free accounts; only the prompt differs.
func Decide(v Viewer, feature Feature) Decision {
	tier := v.Tier
	if !v.SignedIn {
		tier = models.TierFree
	}
	d := Decision{Feature: feature, Visibility: VisibilityFor(tier, feature)}

	switch {
	case d.Visibility == Visible && accountOnly[feature] && !v.SignedIn:
		d.Prompt = PromptSignIn
	case d.Visibility == Visible:
		d.Allowed = true
	case !v.SignedIn:
		d.Prompt = PromptSignIn
	default:
		d.Prompt = upgradePrompt(tier, feature)
	}
	return d
}

// DecideAll returns a decision for every feature.
func DecideAll(v Viewer) []Decision {
	out := make([]Decision, 0, len(Features))
	for _, f := range Features {
		out = append(out, Decide(v, f))
	}
	return out
}

// upgradePrompt names the cheapest tier that unlocks feature.
func upgradePrompt(from models.Tier, feature Feature) string {
	for _, t := range []models.Tier{models.TierPro, models.TierUltimate} {
		if t.Rank() <= from.Rank() {
			continue
		}
		if VisibilityFor(t, feature) == Visible {
			if t == models.TierPro {
				return PromptUpgradePro
			}
			return PromptUpgradeUltimate
		}
	}
	return PromptUpgradeUltimate
}
