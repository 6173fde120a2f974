package profile

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("profile not found")

// Profile is the public projection of an app user, owned by the main app.
// Read-only to the admin backend.
type Profile struct {
	ID          string    `db:"id" json:"id"`
	DisplayName *string   `db:"display_name" json:"display_name"`
	AvatarURL   string    `db:"avatar_url" json:"avatar_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"` // UTC
}

// Unknown is the placeholder shown when a referenced profile no longer exists.
func Unknown() Profile {
	name := "Unknown User"
	return Profile{DisplayName: &name}
}

type Repository interface {
	GetProfilesByID(ctx context.Context, ids []string) ([]Profile, error)
	// QueryAllProfiles returns every profile ordered by creation date, newest first.
	QueryAllProfiles(ctx context.Context) ([]Profile, error)
}
