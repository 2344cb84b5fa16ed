package repository

import (
	"context"
	"time"

	"bias_notifier/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Subscription struct {
	ID              uuid.UUID `db:"id"`
	FCMToken        string    `db:"fcm_token"`
	BiasName        string    `db:"bias_name"`
	BiasTone        string    `db:"bias_tone"`
	NotifyAt        time.Time `db:"notify_at"`
	IntervalMinutes int       `db:"interval_minutes"`
	CreatedAt       time.Time `db:"created_at"`
}

func (s *Subscription) toModel() *model.Subscription {
	return &model.Subscription{
		ID:              s.ID,
		FCMToken:        s.FCMToken,
		BiasName:        s.BiasName,
		BiasTone:        s.BiasTone,
		NotifyAt:        s.NotifyAt,
		IntervalMinutes: s.IntervalMinutes,
		CreatedAt:       s.CreatedAt,
	}
}

func (r *Repository) ListDue(ctx context.Context, now time.Time) ([]*model.Subscription, error) {
	query, args, err := squirrel.
		Select("id", "fcm_token", "bias_name", "bias_tone", "notify_at", "interval_minutes", "created_at").
		From("subscriptions").
		Where(squirrel.LtOrEq{"notify_at": now}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []Subscription
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to select due subscriptions")
	}

	subs := make([]*model.Subscription, len(rows))
	for i := range rows {
		subs[i] = rows[i].toModel()
	}

	return subs, nil
}

func (r *Repository) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	query, args, err := squirrel.
		Insert("subscriptions").
		Columns("fcm_token", "bias_name", "bias_tone", "notify_at", "interval_minutes").
		Values(sub.FCMToken, sub.BiasName, sub.BiasTone, sub.NotifyAt, sub.IntervalMinutes).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	var id uuid.UUID
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return errors.Wrap(err, "failed to insert subscription")
	}
	sub.ID = id

	return nil
}

// RescheduleSubscription advances notify_at only when the record still holds
// the value the cycle read. A concurrent cycle that already advanced it makes
// the guard miss and the update reports ErrNotFound.
func (r *Repository) RescheduleSubscription(ctx context.Context, id uuid.UUID, from, to time.Time) error {
	query, args, err := squirrel.
		Update("subscriptions").
		Set("notify_at", to).
		Where(squirrel.Eq{"id": id, "notify_at": from}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "failed to reschedule subscription")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	query, args, err := squirrel.
		Delete("subscriptions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "failed to delete subscription")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteSubscriptionsByToken(ctx context.Context, token string) (int64, error) {
	query, args, err := squirrel.
		Delete("subscriptions").
		Where(squirrel.Eq{"fcm_token": token}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete subscriptions by token")
	}

	return result.RowsAffected()
}
