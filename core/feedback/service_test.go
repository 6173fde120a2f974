package feedback_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/feedback"
	"github.com/trezcool/darasa/core/profile"
	dummydb "github.com/trezcool/darasa/storage/database/dummy"
	testutil "github.com/trezcool/darasa/tests"
)

type failingFeedbackRepo struct{}

func (failingFeedbackRepo) QueryAllFeedback(context.Context) ([]feedback.Record, error) {
	return nil, errors.New("boom")
}
func (failingFeedbackRepo) DeleteFeedback(context.Context, string) error {
	return errors.New("boom")
}

func setup(t *testing.T) (*feedback.Service, *dummydb.DB) {
	db, err := dummydb.Open()
	require.NoError(t, err)
	svc := feedback.NewService(
		dummydb.NewFeedbackRepository(db),
		dummydb.NewProfileRepository(db),
		testutil.NopLogger{},
	)
	return svc, db
}

func seedProfile(db *dummydb.DB, name string) profile.Profile {
	p := profile.Profile{ID: uuid.NewString(), DisplayName: &name, CreatedAt: time.Now().UTC()}
	dummydb.NewProfileRepository(db).SeedProfile(p)
	return p
}

func Test_Service_Query(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		svc, _ := setup(t)
		assert.Empty(t, svc.Query(ctx))
	})

	t.Run("joins submitter profiles", func(t *testing.T) {
		svc, db := setup(t)
		prof := seedProfile(db, "Alice")
		dummydb.NewFeedbackRepository(db).SeedFeedback(feedback.Record{
			FeatureName:    "flashcards",
			SelectedOption: "like",
			UserID:         prof.ID,
			CreatedAt:      time.Now().UTC(),
		})

		records := svc.Query(ctx)
		require.Len(t, records, 1)
		assert.Equal(t, prof.ID, records[0].Profile.ID)
		assert.Equal(t, "Alice", *records[0].Profile.DisplayName)
	})

	t.Run("missing profile falls back to Unknown User", func(t *testing.T) {
		svc, db := setup(t)
		dummydb.NewFeedbackRepository(db).SeedFeedback(feedback.Record{
			FeatureName: "timer",
			UserID:      uuid.NewString(),
			CreatedAt:   time.Now().UTC(),
		})

		records := svc.Query(ctx)
		require.Len(t, records, 1)
		require.NotNil(t, records[0].Profile.DisplayName)
		assert.Equal(t, "Unknown User", *records[0].Profile.DisplayName)
	})

	t.Run("store errors degrade to empty", func(t *testing.T) {
		svc := feedback.NewService(failingFeedbackRepo{}, nil, testutil.NopLogger{})
		assert.Empty(t, svc.Query(ctx))
		assert.Empty(t, svc.Breakdown(ctx))
		assert.Equal(t, 0, svc.Stats(ctx).Total)
	})
}

func Test_Service_Delete(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	repo := dummydb.NewFeedbackRepository(db)
	rec := repo.SeedFeedback(feedback.Record{FeatureName: "timer", UserID: uuid.NewString()})

	require.NoError(t, svc.Delete(ctx, rec.ID))
	assert.Empty(t, svc.Query(ctx))

	// deletion errors surface, unlike reads
	assert.ErrorIs(t, svc.Delete(ctx, rec.ID), feedback.ErrNotFound)
}
