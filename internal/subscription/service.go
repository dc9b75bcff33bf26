// AngelaMos | 2026
// service.go

// Package subscription is the self-service tier ledger. Changes are
// monotonic: an upgrade must move strictly up the free < pro < premium
// order and a downgrade strictly down; anything else is an invalid
// transition. Billing side effects live outside this service.
package subscription

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/pitchside/internal/access"
	"github.com/carterperez-dev/pitchside/internal/core"
	"github.com/carterperez-dev/pitchside/internal/user"
)

type Service struct {
	repo user.Repository
}

func NewService(repo user.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Upgrade(
	ctx context.Context,
	userID, newTier string,
) (*user.User, error) {
	return s.change(ctx, userID, newTier, true)
}

func (s *Service) Downgrade(
	ctx context.Context,
	userID, newTier string,
) (*user.User, error) {
	return s.change(ctx, userID, newTier, false)
}

func (s *Service) change(
	ctx context.Context,
	userID, newTier string,
	up bool,
) (*user.User, error) {
	op := "downgrade"
	if up {
		op = "upgrade"
	}

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", op, core.ErrUnauthorized)
	}

	tier := access.Tier(newTier)
	if !tier.Valid() {
		return nil, fmt.Errorf(
			"%s: invalid tier %q: %w", op, newTier, core.ErrInvalidInput,
		)
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	current := u.AccessTier()

	if up && tier.Level() <= current.Level() {
		return nil, fmt.Errorf(
			"upgrade %s -> %s: %w", current, tier, core.ErrInvalidTransition,
		)
	}

	if !up && tier.Level() >= current.Level() {
		return nil, fmt.Errorf(
			"downgrade %s -> %s: %w", current, tier, core.ErrInvalidTransition,
		)
	}

	status := user.SubscriptionActive
	if tier == access.TierFree {
		status = user.SubscriptionInactive
	}

	if err := s.repo.UpdateSubscription(ctx, userID, newTier, status); err != nil {
		return nil, err
	}

	u.Tier = newTier
	u.SubscriptionStatus = status
	return u, nil
}

// Cancel flags the subscription as cancelled without touching the tier.
// The tier stays until a downgrade lands, mirroring end-of-billing-period
// behavior.
func (s *Service) Cancel(ctx context.Context, userID string) (*user.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("cancel: %w", core.ErrUnauthorized)
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.SubscriptionStatus == user.SubscriptionCancelled {
		return u, nil
	}

	if err := s.repo.UpdateSubscription(
		ctx, userID, u.Tier, user.SubscriptionCancelled,
	); err != nil {
		return nil, err
	}

	u.SubscriptionStatus = user.SubscriptionCancelled
	return u, nil
}
