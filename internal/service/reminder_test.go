package service

import (
	"context"
	"os"
	"testing"
	"time"

	"bias_notifier/internal/model"
	"bias_notifier/internal/repository"
	"bias_notifier/internal/service/mocks"
	"bias_notifier/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize("error"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const testAppURL = "https://bias-notifier.example.com"

func dueSubscription(token string, notifyAt time.Time, intervalMinutes int) *model.Subscription {
	return &model.Subscription{
		ID:              uuid.New(),
		FCMToken:        token,
		BiasName:        "지수",
		BiasTone:        "다정한 반말",
		NotifyAt:        notifyAt,
		IntervalMinutes: intervalMinutes,
	}
}

func TestReminderService_RunCycle(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name           string
		setupMocks     func(repo *mocks.MockSubscriptionRepository, composer *mocks.MockComposer, pusher *mocks.MockPusher)
		expectedError  bool
		expectedResult *model.CycleResult
	}{
		{
			name: "Empty due set is a no-op",
			setupMocks: func(repo *mocks.MockSubscriptionRepository, composer *mocks.MockComposer, pusher *mocks.MockPusher) {
				repo.On("ListDue", mock.Anything, mock.Anything).
					Return([]*model.Subscription{}, nil)
			},
			expectedResult: &model.CycleResult{},
		},
		{
			name: "Due set read failure fails the cycle",
			setupMocks: func(repo *mocks.MockSubscriptionRepository, composer *mocks.MockComposer, pusher *mocks.MockPusher) {
				repo.On("ListDue", mock.Anything, mock.Anything).
					Return(nil, assert.AnError)
			},
			expectedError: true,
		},
		{
			name: "One-shot subscription is deleted after success",
			setupMocks: func(repo *mocks.MockSubscriptionRepository, composer *mocks.MockComposer, pusher *mocks.MockPusher) {
				sub := dueSubscription("token-1", now.Add(-time.Minute), 0)
				repo.On("ListDue", mock.Anything, mock.Anything).
					Return([]*model.Subscription{sub}, nil)
				composer.On("GenerateContent", mock.Anything, mock.Anything).
					Return("알림이 왔어요!", nil)
				pusher.On("Send", mock.Anything, "token-1", reminderTitle, "알림이 왔어요!", testAppURL).
					Return(nil)
				repo.On("DeleteSubscription", mock.Anything, sub.ID).
					Return(nil)
			},
			expectedResult: &model.CycleResult{Processed: 1, Succeeded: 1},
		},
		{
			name: "Recurring subscription advances from previous notify_at",
			setupMocks: func(repo *mocks.MockSubscriptionRepository, composer *mocks.MockComposer, pusher *mocks.MockPusher) {
				anchor := now.Add(-5 * time.Minute)
				sub := dueSubscription("token-2", anchor, 60)
				repo.On("ListDue", mock.Anything, mock.Anything).
					Return([]*model.Subscription{sub}, nil)
				composer.On("GenerateContent", mock.Anything, mock.Anything).
					Return("새 알림!", nil)
				pusher.On("Send", mock.Anything, "token-2", reminderTitle, "새 알림!", testAppURL).
					Return(nil)
				repo.On("RescheduleSubscription", mock.Anything, sub.ID, anchor, anchor.Add(60*time.Minute)).
					Return(nil)
			},
			expectedResult: &model.CycleResult{Processed: 1, Succeeded: 1},
		},
		{
			name: "Composer failure does not touch the record",
			setupMocks: func(repo *mocks.MockSubscriptionRepository, composer *mocks.MockComposer, pusher *mocks.MockPusher) {
				sub := dueSubscription("token-3", now.Add(-time.Minute), 60)
				repo.On("ListDue", mock.Anything, mock.Anything).
					Return([]*model.Subscription{sub}, nil)
				composer.On("GenerateContent", mock.Anything, mock.Anything).
					Return("", assert.AnError)
			},
			expectedResult: &model.CycleResult{Processed: 1, Failed: 1},
		},
		{
			name: "Unregistered token removes the subscription",
			setupMocks: func(repo *mocks.MockSubscriptionRepository, composer *mocks.MockComposer, pusher *mocks.MockPusher) {
				sub := dueSubscription("token-4", now.Add(-time.Minute), 60)
				repo.On("ListDue", mock.Anything, mock.Anything).
					Return([]*model.Subscription{sub}, nil)
				composer.On("GenerateContent", mock.Anything, mock.Anything).
					Return("알림!", nil)
				pusher.On("Send", mock.Anything, "token-4", reminderTitle, "알림!", testAppURL).
					Return(assert.AnError)
				pusher.On("IsTokenInvalid", assert.AnError).Return(true)
				repo.On("DeleteSubscription", mock.Anything, sub.ID).
					Return(nil)
			},
			expectedResult: &model.CycleResult{Processed: 1, Skipped: 1},
		},
		{
			name: "Transient dispatch failure leaves the record for retry",
			setupMocks: func(repo *mocks.MockSubscriptionRepository, composer *mocks.MockComposer, pusher *mocks.MockPusher) {
				sub := dueSubscription("token-5", now.Add(-time.Minute), 60)
				repo.On("ListDue", mock.Anything, mock.Anything).
					Return([]*model.Subscription{sub}, nil)
				composer.On("GenerateContent", mock.Anything, mock.Anything).
					Return("알림!", nil)
				pusher.On("Send", mock.Anything, "token-5", reminderTitle, "알림!", testAppURL).
					Return(assert.AnError)
				pusher.On("IsTokenInvalid", assert.AnError).Return(false)
			},
			expectedResult: &model.CycleResult{Processed: 1, Failed: 1},
		},
		{
			name: "Lost reschedule race still counts the delivery",
			setupMocks: func(repo *mocks.MockSubscriptionRepository, composer *mocks.MockComposer, pusher *mocks.MockPusher) {
				anchor := now.Add(-time.Minute)
				sub := dueSubscription("token-6", anchor, 30)
				repo.On("ListDue", mock.Anything, mock.Anything).
					Return([]*model.Subscription{sub}, nil)
				composer.On("GenerateContent", mock.Anything, mock.Anything).
					Return("알림!", nil)
				pusher.On("Send", mock.Anything, "token-6", reminderTitle, "알림!", testAppURL).
					Return(nil)
				repo.On("RescheduleSubscription", mock.Anything, sub.ID, anchor, anchor.Add(30*time.Minute)).
					Return(repository.ErrNotFound)
			},
			expectedResult: &model.CycleResult{Processed: 1, Succeeded: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockSubscriptionRepository{}
			mockComposer := &mocks.MockComposer{}
			mockPusher := &mocks.MockPusher{}
			tt.setupMocks(mockRepo, mockComposer, mockPusher)

			service := NewReminderService(mockRepo, mockComposer, mockPusher, testAppURL)
			result, err := service.RunCycle(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedResult, result)
			}

			mockRepo.AssertExpectations(t)
			mockComposer.AssertExpectations(t)
			mockPusher.AssertExpectations(t)
		})
	}
}

func TestReminderService_RunCycle_FailureIsolation(t *testing.T) {
	now := time.Now().UTC()

	broken := dueSubscription("broken-token", now.Add(-time.Minute), 0)
	healthy := dueSubscription("healthy-token", now.Add(-time.Minute), 0)
	healthy.BiasName = "로제"

	mockRepo := &mocks.MockSubscriptionRepository{}
	mockComposer := &mocks.MockComposer{}
	mockPusher := &mocks.MockPusher{}

	mockRepo.On("ListDue", mock.Anything, mock.Anything).
		Return([]*model.Subscription{broken, healthy}, nil)

	mockComposer.On("GenerateContent", mock.Anything, biasPrompt(broken.BiasName, broken.BiasTone)).
		Return("", assert.AnError)
	mockComposer.On("GenerateContent", mock.Anything, biasPrompt(healthy.BiasName, healthy.BiasTone)).
		Return("알림!", nil)

	mockPusher.On("Send", mock.Anything, "healthy-token", reminderTitle, "알림!", testAppURL).
		Return(nil)
	mockRepo.On("DeleteSubscription", mock.Anything, healthy.ID).
		Return(nil)

	service := NewReminderService(mockRepo, mockComposer, mockPusher, testAppURL)
	result, err := service.RunCycle(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, &model.CycleResult{Processed: 2, Succeeded: 1, Failed: 1}, result)

	// The healthy subscription was dispatched despite its sibling failing.
	mockPusher.AssertCalled(t, "Send", mock.Anything, "healthy-token", reminderTitle, "알림!", testAppURL)
	mockRepo.AssertExpectations(t)
	mockComposer.AssertExpectations(t)
	mockPusher.AssertExpectations(t)
}

func TestBiasPrompt(t *testing.T) {
	assert.Contains(t, biasPrompt("지수", "다정한 반말"), `"지수"`)
	assert.Contains(t, biasPrompt("", "존댓말"), defaultBiasName)
}
