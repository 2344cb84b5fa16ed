package mocks

import (
	"context"
	"time"

	"bias_notifier/internal/model"
	"bias_notifier/pkg/proton"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) ListDue(ctx context.Context, now time.Time) ([]*model.Subscription, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) RescheduleSubscription(ctx context.Context, id uuid.UUID, from, to time.Time) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) DeleteSubscriptionsByToken(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

type MockRewardWatchRepository struct {
	mock.Mock
}

func (m *MockRewardWatchRepository) ListRewardWatches(ctx context.Context) ([]*model.RewardWatch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RewardWatch), args.Error(1)
}

func (m *MockRewardWatchRepository) CreateRewardWatch(ctx context.Context, watch *model.RewardWatch) error {
	args := m.Called(ctx, watch)
	return args.Error(0)
}

func (m *MockRewardWatchRepository) DeleteRewardWatchesByToken(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

type MockComposer struct {
	mock.Mock
}

func (m *MockComposer) GenerateContent(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) Send(ctx context.Context, token, title, body, link string) error {
	args := m.Called(ctx, token, title, body, link)
	return args.Error(0)
}

func (m *MockPusher) IsTokenInvalid(err error) bool {
	args := m.Called(err)
	return args.Bool(0)
}

type MockRewardStatusSource struct {
	mock.Mock
}

func (m *MockRewardStatusSource) GetVoterInfo(ctx context.Context, account string) (*proton.VoterInfo, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*proton.VoterInfo), args.Error(1)
}
