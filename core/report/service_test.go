package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/profile"
	"github.com/trezcool/darasa/core/report"
	dummydb "github.com/trezcool/darasa/storage/database/dummy"
	testutil "github.com/trezcool/darasa/tests"
)

func setup(t *testing.T) (*report.Service, *dummydb.DB) {
	db, err := dummydb.Open()
	require.NoError(t, err)
	svc := report.NewService(
		dummydb.NewReportRepository(db),
		dummydb.NewProfileRepository(db),
		testutil.NopLogger{},
	)
	return svc, db
}

func Test_Service_Query(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown scope", func(t *testing.T) {
		svc, _ := setup(t)
		_, err := svc.Query(ctx, report.Scope("dms"))
		assert.ErrorIs(t, err, report.ErrUnknownScope)
	})

	t.Run("resolves message, reporter and room", func(t *testing.T) {
		svc, db := setup(t)
		repo := dummydb.NewReportRepository(db)

		name := "Alice"
		reporter := profile.Profile{ID: uuid.NewString(), DisplayName: &name}
		dummydb.NewProfileRepository(db).SeedProfile(reporter)

		room := repo.SeedRoom(report.Room{Name: "Algebra 101"})
		msg := repo.SeedMessage(report.ScopeStudyRoom, report.Message{Content: "spam", UserID: uuid.NewString()})
		repo.SeedReport(report.ScopeStudyRoom, report.Report{
			MessageID:  msg.ID,
			ReporterID: reporter.ID,
			Reason:     "spam",
			RoomID:     room.ID,
			CreatedAt:  time.Now().UTC(),
		})

		resolved, err := svc.Query(ctx, report.ScopeStudyRoom)
		require.NoError(t, err)
		require.Len(t, resolved, 1)
		require.NotNil(t, resolved[0].Message)
		assert.Equal(t, "spam", resolved[0].Message.Content)
		require.NotNil(t, resolved[0].Reporter)
		assert.Equal(t, "Alice", *resolved[0].Reporter.DisplayName)
		require.NotNil(t, resolved[0].Room)
		assert.Equal(t, "Algebra 101", resolved[0].Room.Name)
	})

	t.Run("missing references resolve to nil members", func(t *testing.T) {
		svc, db := setup(t)
		repo := dummydb.NewReportRepository(db)
		repo.SeedReport(report.ScopeCommunity, report.Report{
			MessageID:  uuid.NewString(),
			ReporterID: uuid.NewString(),
			CreatedAt:  time.Now().UTC(),
		})

		resolved, err := svc.Query(ctx, report.ScopeCommunity)
		require.NoError(t, err)
		require.Len(t, resolved, 1)
		assert.Nil(t, resolved[0].Message)
		assert.Nil(t, resolved[0].Reporter)
		assert.Nil(t, resolved[0].Room)
	})
}

func Test_Service_DeleteMessage(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	repo := dummydb.NewReportRepository(db)

	msg := repo.SeedMessage(report.ScopeCommunity, report.Message{Content: "spam"})
	repo.SeedReport(report.ScopeCommunity, report.Report{MessageID: msg.ID, ReporterID: uuid.NewString()})
	repo.SeedReport(report.ScopeCommunity, report.Report{MessageID: msg.ID, ReporterID: uuid.NewString()})
	other := repo.SeedReport(report.ScopeCommunity, report.Report{MessageID: uuid.NewString(), ReporterID: uuid.NewString()})

	require.NoError(t, svc.DeleteMessage(ctx, report.ScopeCommunity, msg.ID))

	// the message's reports cascade; unrelated reports stay
	resolved, err := svc.Query(ctx, report.ScopeCommunity)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, other.ID, resolved[0].ID)

	assert.ErrorIs(t, svc.DeleteMessage(ctx, report.ScopeCommunity, msg.ID), report.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteMessage(ctx, report.Scope("dms"), msg.ID), report.ErrUnknownScope)
}

func Test_Service_Dismiss(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	repo := dummydb.NewReportRepository(db)

	msg := repo.SeedMessage(report.ScopeCommunity, report.Message{Content: "fine actually"})
	rep := repo.SeedReport(report.ScopeCommunity, report.Report{MessageID: msg.ID, ReporterID: uuid.NewString()})

	require.NoError(t, svc.Dismiss(ctx, report.ScopeCommunity, rep.ID))

	// the message survives a dismissal
	resolved, err := svc.Query(ctx, report.ScopeCommunity)
	require.NoError(t, err)
	assert.Empty(t, resolved)
	msgs, err := repo.GetMessagesByID(ctx, report.ScopeCommunity, []string{msg.ID})
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}
