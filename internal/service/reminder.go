package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bias_notifier/internal/model"
	"bias_notifier/internal/repository"
	"bias_notifier/pkg/logger"

	"go.uber.org/zap"
)

const reminderTitle = "최애의 알리미"

const defaultBiasName = "당신의 최애"

type ReminderService struct {
	repo     SubscriptionRepository
	composer Composer
	pusher   Pusher
	appURL   string
}

func NewReminderService(repo SubscriptionRepository, composer Composer, pusher Pusher, appURL string) *ReminderService {
	return &ReminderService{
		repo:     repo,
		composer: composer,
		pusher:   pusher,
		appURL:   appURL,
	}
}

// RunCycle sends every due reminder once and applies the post-send state
// transition. Per-subscription failures are counted, never propagated; the
// cycle itself fails only when the due set cannot be read.
func (s *ReminderService) RunCycle(ctx context.Context) (*model.CycleResult, error) {
	log := logger.Logger()
	now := time.Now().UTC()

	subs, err := s.repo.ListDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list due subscriptions: %w", err)
	}

	result := &model.CycleResult{Processed: len(subs)}
	if len(subs) == 0 {
		return result, nil
	}

	log.Info("processing due subscriptions", zap.Int("count", len(subs)))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func(sub *model.Subscription) {
			defer wg.Done()

			unitCtx, cancel := context.WithTimeout(ctx, unitTimeout)
			defer cancel()

			outcome := s.processSubscription(unitCtx, sub)

			mu.Lock()
			switch outcome {
			case outcomeSucceeded:
				result.Succeeded++
			case outcomeSkipped:
				result.Skipped++
			default:
				result.Failed++
			}
			mu.Unlock()
		}(sub)
	}
	wg.Wait()

	return result, nil
}

func (s *ReminderService) processSubscription(ctx context.Context, sub *model.Subscription) unitOutcome {
	log := logger.Logger().With(zap.String("subscription_id", sub.ID.String()))

	body, err := s.composer.GenerateContent(ctx, biasPrompt(sub.BiasName, sub.BiasTone))
	if err != nil {
		log.Error("failed to compose reminder", zap.Error(err))
		return outcomeFailed
	}

	err = s.pusher.Send(ctx, sub.FCMToken, reminderTitle, body, s.appURL)
	if err != nil {
		if s.pusher.IsTokenInvalid(err) {
			if dErr := s.repo.DeleteSubscription(ctx, sub.ID); dErr != nil && !errors.Is(dErr, repository.ErrNotFound) {
				log.Error("failed to remove subscription with unregistered token", zap.Error(dErr))
				return outcomeFailed
			}
			log.Info("removed subscription with unregistered token")
			return outcomeSkipped
		}
		// notify_at stays in the past, so the next cycle retries.
		log.Error("failed to dispatch reminder", zap.Error(err))
		return outcomeFailed
	}

	if sub.IntervalMinutes == 0 {
		if err := s.repo.DeleteSubscription(ctx, sub.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			log.Error("failed to delete one-shot subscription", zap.Error(err))
		}
		return outcomeSucceeded
	}

	next := sub.NextNotifyAt()
	err = s.repo.RescheduleSubscription(ctx, sub.ID, sub.NotifyAt, next)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// Another cycle advanced or removed the record first.
		log.Info("subscription already rescheduled or gone", zap.Time("next", next))
	case err != nil:
		// Delivery happened; a repeat next cycle is the accepted cost.
		log.Error("failed to reschedule subscription", zap.Error(err))
	default:
		log.Info("rescheduled subscription", zap.Time("next", next))
	}

	return outcomeSucceeded
}

func biasPrompt(name, tone string) string {
	if name == "" {
		name = defaultBiasName
	}
	return fmt.Sprintf(`"%s"의 말투는 "%s"입니다. 이 말투를 사용하여 "알림이 왔어요!"라는 내용의 짧고 친근한 알림 메시지를 100자 이내로 생성해주세요.`, name, tone)
}
