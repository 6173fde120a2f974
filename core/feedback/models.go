package feedback

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/darasa/core/profile"
)

var ErrNotFound = errors.New("feedback not found")

// Record is a single feature-feedback submission. Immutable once created;
// the dashboard only reads and deletes.
type Record struct {
	ID             string    `db:"id" json:"id"`
	FeatureName    string    `db:"feature_name" json:"feature_name"`
	SelectedOption string    `db:"selected_option" json:"selected_option"`
	UserID         string    `db:"user_id" json:"user_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"` // UTC
}

// RecordWithProfile pairs a Record with its submitter's profile for display.
type RecordWithProfile struct {
	Record
	Profile profile.Profile `json:"profile"`
}

type Repository interface {
	// QueryAllFeedback returns every record ordered by creation date, newest first.
	QueryAllFeedback(ctx context.Context) ([]Record, error)
	DeleteFeedback(ctx context.Context, id string) error
}
