package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bias_notifier/internal/model"
	"bias_notifier/pkg/logger"
	"bias_notifier/pkg/proton"

	"go.uber.org/zap"
)

const (
	rewardTitle = "XPR 보상 청구 가능!"
	rewardBody  = "지금 바로 XPR 보상을 청구하세요!"
)

type RewardService struct {
	repo     RewardWatchRepository
	chain    RewardStatusSource
	pusher   Pusher
	claimURL string
}

func NewRewardService(repo RewardWatchRepository, chain RewardStatusSource, pusher Pusher, claimURL string) *RewardService {
	return &RewardService{
		repo:     repo,
		chain:    chain,
		pusher:   pusher,
		claimURL: claimURL,
	}
}

// RunCycle checks every watched account's claim window and pushes an alert
// for the claimable ones. Watches are read-only here: an account that stays
// claimable keeps getting nudged every cycle until the holder claims.
func (s *RewardService) RunCycle(ctx context.Context) (*model.CycleResult, error) {
	watches, err := s.repo.ListRewardWatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reward watches: %w", err)
	}

	result := &model.CycleResult{Processed: len(watches)}
	if len(watches) == 0 {
		return result, nil
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, watch := range watches {
		wg.Add(1)
		go func(watch *model.RewardWatch) {
			defer wg.Done()

			unitCtx, cancel := context.WithTimeout(ctx, unitTimeout)
			defer cancel()

			outcome := s.checkWatch(unitCtx, watch)

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
		}(watch)
	}
	wg.Wait()

	return result, nil
}

func (s *RewardService) checkWatch(ctx context.Context, watch *model.RewardWatch) unitOutcome {
	log := logger.Logger().With(zap.String("xpr_account", watch.XPRAccount))

	info, err := s.chain.GetVoterInfo(ctx, watch.XPRAccount)
	if err != nil {
		if errors.Is(err, proton.ErrVoterNotFound) {
			log.Info("no voter row for account, skipping")
			return outcomeSkipped
		}
		log.Error("failed to fetch reward status", zap.Error(err))
		return outcomeFailed
	}

	readyAt := info.LastClaimTime().Add(claimCooldown)
	if readyAt.After(time.Now().UTC()) {
		return outcomeSkipped
	}

	if err := s.pusher.Send(ctx, watch.FCMToken, rewardTitle, rewardBody, s.claimURL); err != nil {
		log.Error("failed to dispatch reward alert", zap.Error(err))
		return outcomeFailed
	}

	log.Info("reward alert sent", zap.Time("ready_at", readyAt))
	return outcomeSucceeded
}
