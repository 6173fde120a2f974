package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/core/feedback"
)

type feedbackRepository struct {
	db *sqlx.DB
}

var _ feedback.Repository = (*feedbackRepository)(nil)

func NewFeedbackRepository(db *sqlx.DB) *feedbackRepository {
	return &feedbackRepository{db: db}
}

func (repo *feedbackRepository) QueryAllFeedback(ctx context.Context) ([]feedback.Record, error) {
	var records []feedback.Record
	err := repo.db.SelectContext(ctx, &records,
		`SELECT id, feature_name, selected_option, user_id, created_at
		 FROM feature_feedback
		 ORDER BY created_at DESC`)
	return records, err
}

func (repo *feedbackRepository) DeleteFeedback(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM feature_feedback WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return feedback.ErrNotFound
	}
	return nil
}
