package model

import (
	"time"

	"github.com/google/uuid"
)

// RewardWatch pairs an XPR account with the push token that gets notified
// when the account's staking reward becomes claimable.
type RewardWatch struct {
	ID         uuid.UUID
	XPRAccount string
	FCMToken   string
	CreatedAt  time.Time
}
