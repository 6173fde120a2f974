package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/darasa/core/profile"
)

type profileRepository struct {
	db *profileTable
}

var _ profile.Repository = (*profileRepository)(nil)

func NewProfileRepository(db *DB) *profileRepository {
	return &profileRepository{db: db.profile}
}

// SeedProfile is a test helper.
func (repo *profileRepository) SeedProfile(p profile.Profile) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.table[p.ID] = &p
}

func (repo *profileRepository) GetProfilesByID(_ context.Context, ids []string) ([]profile.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	profiles := make([]profile.Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := repo.db.table[id]; ok {
			profiles = append(profiles, *p)
		}
	}
	return profiles, nil
}

func (repo *profileRepository) QueryAllProfiles(_ context.Context) ([]profile.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	profiles := make([]profile.Profile, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		profiles = append(profiles, *p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].CreatedAt.After(profiles[j].CreatedAt) })
	return profiles, nil
}
