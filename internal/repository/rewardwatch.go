package repository

import (
	"context"
	"time"

	"bias_notifier/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type RewardWatch struct {
	ID         uuid.UUID `db:"id"`
	XPRAccount string    `db:"xpr_account"`
	FCMToken   string    `db:"fcm_token"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r *Repository) ListRewardWatches(ctx context.Context) ([]*model.RewardWatch, error) {
	query, args, err := squirrel.
		Select("id", "xpr_account", "fcm_token", "created_at").
		From("reward_watches").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []RewardWatch
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to select reward watches")
	}

	watches := make([]*model.RewardWatch, len(rows))
	for i, row := range rows {
		watches[i] = &model.RewardWatch{
			ID:         row.ID,
			XPRAccount: row.XPRAccount,
			FCMToken:   row.FCMToken,
			CreatedAt:  row.CreatedAt,
		}
	}

	return watches, nil
}

func (r *Repository) CreateRewardWatch(ctx context.Context, watch *model.RewardWatch) error {
	query, args, err := squirrel.
		Insert("reward_watches").
		Columns("xpr_account", "fcm_token").
		Values(watch.XPRAccount, watch.FCMToken).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	var id uuid.UUID
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return errors.Wrap(err, "failed to insert reward watch")
	}
	watch.ID = id

	return nil
}

func (r *Repository) DeleteRewardWatchesByToken(ctx context.Context, token string) (int64, error) {
	query, args, err := squirrel.
		Delete("reward_watches").
		Where(squirrel.Eq{"fcm_token": token}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete reward watches by token")
	}

	return result.RowsAffected()
}
