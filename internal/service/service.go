package service

import (
	"context"
	"time"

	"bias_notifier/internal/model"
	"bias_notifier/pkg/proton"

	"github.com/google/uuid"
)

// claimCooldown is how long a staking reward takes to become claimable again
// after a claim.
const claimCooldown = 24 * time.Hour

// unitTimeout bounds one subscription's (or watch's) compose/lookup/dispatch
// sequence so a stalled external call cannot hold the whole cycle open.
const unitTimeout = 30 * time.Second

type unitOutcome int

const (
	outcomeSucceeded unitOutcome = iota
	outcomeFailed
	outcomeSkipped
)

type SubscriptionServiceI interface {
	Subscribe(ctx context.Context, sub *model.Subscription) error
	Unsubscribe(ctx context.Context, token string) error
	WatchRewards(ctx context.Context, watch *model.RewardWatch) error
	UnwatchRewards(ctx context.Context, token string) error
}

type ReminderServiceI interface {
	RunCycle(ctx context.Context) (*model.CycleResult, error)
}

type RewardServiceI interface {
	RunCycle(ctx context.Context) (*model.CycleResult, error)
}

type SubscriptionRepository interface {
	ListDue(ctx context.Context, now time.Time) ([]*model.Subscription, error)
	CreateSubscription(ctx context.Context, sub *model.Subscription) error
	RescheduleSubscription(ctx context.Context, id uuid.UUID, from, to time.Time) error
	DeleteSubscription(ctx context.Context, id uuid.UUID) error
	DeleteSubscriptionsByToken(ctx context.Context, token string) (int64, error)
}

type RewardWatchRepository interface {
	ListRewardWatches(ctx context.Context) ([]*model.RewardWatch, error)
	CreateRewardWatch(ctx context.Context, watch *model.RewardWatch) error
	DeleteRewardWatchesByToken(ctx context.Context, token string) (int64, error)
}

// Composer turns a prompt into a short notification body.
type Composer interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Pusher delivers one notification to a registration token. IsTokenInvalid
// classifies a Send error as the permanent token-gone failure.
type Pusher interface {
	Send(ctx context.Context, token, title, body, link string) error
	IsTokenInvalid(err error) bool
}

// RewardStatusSource looks up an account's claim history on chain.
type RewardStatusSource interface {
	GetVoterInfo(ctx context.Context, account string) (*proton.VoterInfo, error)
}
