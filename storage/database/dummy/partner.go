package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/partner"
)

type partnerRepository struct {
	db *partnerTable
}

var _ partner.Repository = (*partnerRepository)(nil)

func NewPartnerRepository(db *DB) *partnerRepository {
	return &partnerRepository{db: db.partner}
}

func (repo *partnerRepository) QueryAllPartners(_ context.Context) ([]partner.Partner, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	partners := make([]partner.Partner, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		partners = append(partners, *p)
	}
	sort.Slice(partners, func(i, j int) bool { return partners[i].CreatedAt.After(partners[j].CreatedAt) })
	return partners, nil
}

func (repo *partnerRepository) GetPartnerByID(_ context.Context, id string) (partner.Partner, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return *p, nil
	}
	return partner.Partner{}, partner.ErrNotFound
}

func (repo *partnerRepository) CreatePartner(_ context.Context, p partner.Partner) (partner.Partner, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	p.ID = uuid.NewString()
	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *partnerRepository) UpdatePartner(_ context.Context, p partner.Partner) (partner.Partner, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[p.ID]; !ok {
		return partner.Partner{}, partner.ErrNotFound
	}
	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *partnerRepository) DeletePartner(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return partner.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
