// AngelaMos | 2026
// policy_test.go

package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTier_Level(t *testing.T) {
	assert.Equal(t, 0, TierFree.Level())
	assert.Equal(t, 1, TierPro.Level())
	assert.Equal(t, 2, TierPremium.Level())
	assert.Equal(t, 0, Tier("garbage").Level())
	assert.Equal(t, 0, Tier("").Level())
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		input    string
		expected Tier
	}{
		{"free", TierFree},
		{"pro", TierPro},
		{"premium", TierPremium},
		{"", TierFree},
		{"enterprise", TierFree},
		{"PREMIUM", TierFree},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTier(tt.input))
		})
	}
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name    string
		content Tier
		viewer  Tier
		allowed bool
	}{
		{"free content free viewer", TierFree, TierFree, true},
		{"free content pro viewer", TierFree, TierPro, true},
		{"free content premium viewer", TierFree, TierPremium, true},
		{"pro content free viewer", TierPro, TierFree, false},
		{"pro content pro viewer", TierPro, TierPro, true},
		{"pro content premium viewer", TierPro, TierPremium, true},
		{"premium content free viewer", TierPremium, TierFree, false},
		{"premium content pro viewer", TierPremium, TierPro, false},
		{"premium content premium viewer", TierPremium, TierPremium, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanAccess(tt.content, tt.viewer))
		})
	}
}

func TestCanAccess_OrderProperty(t *testing.T) {
	tiers := []Tier{TierFree, TierPro, TierPremium}

	for _, content := range tiers {
		for _, viewer := range tiers {
			expected := viewer.Level() >= content.Level()
			assert.Equal(t, expected, CanAccess(content, viewer),
				"content=%s viewer=%s", content, viewer)
		}
	}
}

func TestDecide(t *testing.T) {
	t.Run("visible", func(t *testing.T) {
		d := Decide(TierPro, TierPremium)
		assert.True(t, d.Visible)
		assert.False(t, d.Locked)
		assert.Empty(t, d.Reason)
	})

	t.Run("locked", func(t *testing.T) {
		d := Decide(TierPro, TierFree)
		assert.False(t, d.Visible)
		assert.True(t, d.Locked)
		assert.Equal(t, "requires pro subscription", d.Reason)
	})

	t.Run("anonymous viewer is free", func(t *testing.T) {
		d := Decide(TierPremium, ParseTier(""))
		assert.True(t, d.Locked)
	})
}
