package model

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is a scheduled push reminder. IntervalMinutes == 0 marks a
// one-shot subscription that is removed after its single delivery.
type Subscription struct {
	ID              uuid.UUID
	FCMToken        string
	BiasName        string
	BiasTone        string
	NotifyAt        time.Time
	IntervalMinutes int
	CreatedAt       time.Time
}

// NextNotifyAt anchors the next delivery on the previous one, not on the
// processing time, so recurring schedules do not drift.
func (s *Subscription) NextNotifyAt() time.Time {
	return s.NotifyAt.Add(time.Duration(s.IntervalMinutes) * time.Minute)
}
