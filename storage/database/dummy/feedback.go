package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/feedback"
)

type feedbackRepository struct {
	db *feedbackTable
}

var _ feedback.Repository = (*feedbackRepository)(nil)

func NewFeedbackRepository(db *DB) *feedbackRepository {
	return &feedbackRepository{db: db.feedback}
}

// SeedFeedback is a test helper.
func (repo *feedbackRepository) SeedFeedback(rec feedback.Record) feedback.Record {
	repo.db.Lock()
	defer repo.db.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	repo.db.table[rec.ID] = &rec
	return rec
}

func (repo *feedbackRepository) QueryAllFeedback(_ context.Context) ([]feedback.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	records := make([]feedback.Record, 0, len(repo.db.table))
	for _, rec := range repo.db.table {
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt.After(records[j].CreatedAt) })
	return records, nil
}

func (repo *feedbackRepository) DeleteFeedback(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return feedback.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
