// AngelaMos | 2026
// policy.go

// Package access implements the tier-order visibility policy. It has no
// dependencies and never fails: every question about whether a viewer may
// see a piece of content resolves to a Decision.
package access

type Tier string

const (
	TierFree    Tier = "free"
	TierPro     Tier = "pro"
	TierPremium Tier = "premium"
)

// Level returns the position of the tier in the order free < pro < premium.
// Unknown values rank as free so a bad column value can only under-grant.
func (t Tier) Level() int {
	switch t {
	case TierPro:
		return 1
	case TierPremium:
		return 2
	default:
		return 0
	}
}

func (t Tier) Valid() bool {
	switch t {
	case TierFree, TierPro, TierPremium:
		return true
	}
	return false
}

// ParseTier maps arbitrary input to a tier. Empty or unknown input is a
// free viewer; this is how unauthenticated requests are treated.
func ParseTier(s string) Tier {
	switch Tier(s) {
	case TierPro:
		return TierPro
	case TierPremium:
		return TierPremium
	default:
		return TierFree
	}
}

// CanAccess reports whether a viewer of viewerTier may see content gated at
// contentTier.
func CanAccess(contentTier, viewerTier Tier) bool {
	return viewerTier.Level() >= contentTier.Level()
}

type Decision struct {
	Visible bool   `json:"visible"`
	Locked  bool   `json:"locked"`
	Reason  string `json:"reason,omitempty"`
}

// Decide computes the access decision for one content item and one viewer.
func Decide(contentTier, viewerTier Tier) Decision {
	if CanAccess(contentTier, viewerTier) {
		return Decision{Visible: true}
	}

	return Decision{
		Visible: false,
		Locked:  true,
		Reason:  "requires " + string(contentTier) + " subscription",
	}
}
