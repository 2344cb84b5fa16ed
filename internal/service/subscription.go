package service

import (
	"context"
	"fmt"

	"bias_notifier/internal/model"
	"bias_notifier/pkg/logger"

	"go.uber.org/zap"
)

type SubscriptionService struct {
	subs    SubscriptionRepository
	watches RewardWatchRepository
}

func NewSubscriptionService(subs SubscriptionRepository, watches RewardWatchRepository) *SubscriptionService {
	return &SubscriptionService{
		subs:    subs,
		watches: watches,
	}
}

func (s *SubscriptionService) Subscribe(ctx context.Context, sub *model.Subscription) error {
	err := s.subs.CreateSubscription(ctx, sub)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

// Unsubscribe removes every subscription registered to the token. Removing a
// token that has no subscriptions is not an error.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, token string) error {
	deleted, err := s.subs.DeleteSubscriptionsByToken(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to delete subscriptions: %w", err)
	}

	logger.Logger().Info("unsubscribed token", zap.Int64("deleted", deleted))
	return nil
}

func (s *SubscriptionService) WatchRewards(ctx context.Context, watch *model.RewardWatch) error {
	err := s.watches.CreateRewardWatch(ctx, watch)
	if err != nil {
		return fmt.Errorf("failed to create reward watch: %w", err)
	}

	return nil
}

func (s *SubscriptionService) UnwatchRewards(ctx context.Context, token string) error {
	deleted, err := s.watches.DeleteRewardWatchesByToken(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to delete reward watches: %w", err)
	}

	logger.Logger().Info("removed reward watches for token", zap.Int64("deleted", deleted))
	return nil
}
