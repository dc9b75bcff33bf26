// AngelaMos | 2026
// service_test.go

package subscription

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/pitchside/internal/core"
	"github.com/carterperez-dev/pitchside/internal/user"
)

type fakeRepo struct {
	user.Repository

	users   map[string]*user.User
	updates int
}

func newFakeRepo(users ...*user.User) *fakeRepo {
	m := make(map[string]*user.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeRepo{users: m}
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepo) UpdateSubscription(
	_ context.Context,
	id, tier, status string,
) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("update subscription: %w", core.ErrNotFound)
	}
	u.Tier = tier
	u.SubscriptionStatus = status
	f.updates++
	return nil
}

func proUser() *user.User {
	return &user.User{
		ID:                 "user-1",
		Tier:               user.TierPro,
		SubscriptionStatus: user.SubscriptionActive,
	}
}

func TestUpgrade(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		wantErr error
	}{
		{"free to pro", user.TierFree, user.TierPro, nil},
		{"free to premium", user.TierFree, user.TierPremium, nil},
		{"pro to premium", user.TierPro, user.TierPremium, nil},
		{"pro to pro", user.TierPro, user.TierPro, core.ErrInvalidTransition},
		{"premium to pro", user.TierPremium, user.TierPro, core.ErrInvalidTransition},
		{"pro to free", user.TierPro, user.TierFree, core.ErrInvalidTransition},
		{"unknown tier", user.TierFree, "enterprise", core.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(&user.User{ID: "user-1", Tier: tt.current})
			svc := NewService(repo)

			updated, err := svc.Upgrade(context.Background(), "user-1", tt.target)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, repo.updates, "failed upgrade must not write")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.target, updated.Tier)
			assert.Equal(t, user.SubscriptionActive, updated.SubscriptionStatus)
		})
	}
}

func TestDowngrade(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		wantErr error
	}{
		{"premium to pro", user.TierPremium, user.TierPro, nil},
		{"premium to free", user.TierPremium, user.TierFree, nil},
		{"pro to free", user.TierPro, user.TierFree, nil},
		{"pro to pro", user.TierPro, user.TierPro, core.ErrInvalidTransition},
		{"pro to premium", user.TierPro, user.TierPremium, core.ErrInvalidTransition},
		{"free to anything lower", user.TierFree, user.TierFree, core.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(&user.User{ID: "user-1", Tier: tt.current})
			svc := NewService(repo)

			updated, err := svc.Downgrade(context.Background(), "user-1", tt.target)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, repo.updates)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.target, updated.Tier)
		})
	}
}

func TestDowngradeToFree_DeactivatesSubscription(t *testing.T) {
	repo := newFakeRepo(proUser())
	svc := NewService(repo)

	updated, err := svc.Downgrade(context.Background(), "user-1", user.TierFree)
	require.NoError(t, err)

	assert.Equal(t, user.TierFree, updated.Tier)
	assert.Equal(t, user.SubscriptionInactive, updated.SubscriptionStatus)
}

func TestUpgradeThenRepeatFails(t *testing.T) {
	repo := newFakeRepo(proUser())
	svc := NewService(repo)

	updated, err := svc.Upgrade(context.Background(), "user-1", user.TierPremium)
	require.NoError(t, err)
	assert.Equal(t, user.TierPremium, updated.Tier)

	_, err = svc.Upgrade(context.Background(), "user-1", user.TierPro)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
}

func TestCancel(t *testing.T) {
	repo := newFakeRepo(proUser())
	svc := NewService(repo)

	updated, err := svc.Cancel(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, user.SubscriptionCancelled, updated.SubscriptionStatus)
	assert.Equal(t, user.TierPro, updated.Tier, "cancel keeps the tier")

	// Idempotent: second cancel is a no-op write-wise.
	writes := repo.updates
	_, err = svc.Cancel(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, writes, repo.updates)
}

func TestChange_MissingUser(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Upgrade(context.Background(), "ghost", user.TierPro)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestChange_Unauthenticated(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Upgrade(context.Background(), "", user.TierPro)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}
