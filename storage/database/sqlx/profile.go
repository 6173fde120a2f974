package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/core/profile"
)

type profileRepository struct {
	db *sqlx.DB
}

var _ profile.Repository = (*profileRepository)(nil)

func NewProfileRepository(db *sqlx.DB) *profileRepository {
	return &profileRepository{db: db}
}

func (repo *profileRepository) GetProfilesByID(ctx context.Context, ids []string) ([]profile.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		`SELECT id, display_name, avatar_url, created_at FROM profiles WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var profiles []profile.Profile
	err = repo.db.SelectContext(ctx, &profiles, repo.db.Rebind(query), args...)
	return profiles, err
}

func (repo *profileRepository) QueryAllProfiles(ctx context.Context) ([]profile.Profile, error) {
	var profiles []profile.Profile
	err := repo.db.SelectContext(ctx, &profiles,
		`SELECT id, display_name, avatar_url, created_at
		 FROM profiles
		 ORDER BY created_at DESC`)
	return profiles, err
}
