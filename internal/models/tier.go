package models

import (
	"fmt"
	"strings"
)

// Tier is a subscription level controlling feature visibility.
type Tier string

const (
	TierFree     Tier = "free"
	TierPro      Tier = "pro"
	TierUltimate Tier = "ultimate"
)

// Rank orders tiers from lowest to highest entitlement.
func (t Tier) Rank() int {
	switch t {
	case TierPro:
		return 1
	case TierUltimate:
		return 2
	default:
		return 0
	}
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	return t == TierFree || t == TierPro || t == TierUltimate
}

// Paid reports whether t requires a payment or an access code.
func (t Tier) Paid() bool {
	return t == TierPro || t == TierUltimate
}

// ParseTier parses a tier name case-insensitively.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown tier %q", s)
	}
	return t, nil
}
