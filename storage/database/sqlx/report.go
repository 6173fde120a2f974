package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/core/report"
)

type reportRepository struct {
	db *sqlx.DB
}

var _ report.Repository = (*reportRepository)(nil)

func NewReportRepository(db *sqlx.DB) *reportRepository {
	return &reportRepository{db: db}
}

func reportTables(scope report.Scope) (reports, messages string, err error) {
	switch scope {
	case report.ScopeCommunity:
		return "community_reports", "community_messages", nil
	case report.ScopeStudyRoom:
		return "study_room_reports", "study_room_messages", nil
	default:
		return "", "", report.ErrUnknownScope
	}
}

func (repo *reportRepository) QueryReports(ctx context.Context, scope report.Scope) ([]report.Report, error) {
	reportsTable, _, err := reportTables(scope)
	if err != nil {
		return nil, err
	}
	cols := `id, message_id, reporter_id, reason, '' AS room_id, created_at`
	if scope == report.ScopeStudyRoom {
		cols = `id, message_id, reporter_id, reason, room_id, created_at`
	}
	var reports []report.Report
	err = repo.db.SelectContext(ctx, &reports,
		`SELECT `+cols+` FROM `+reportsTable+` ORDER BY created_at DESC`)
	return reports, err
}

func (repo *reportRepository) GetMessagesByID(ctx context.Context, scope report.Scope, ids []string) ([]report.Message, error) {
	_, messagesTable, err := reportTables(scope)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		`SELECT id, content, user_id, created_at FROM `+messagesTable+` WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var messages []report.Message
	err = repo.db.SelectContext(ctx, &messages, repo.db.Rebind(query), args...)
	return messages, err
}

func (repo *reportRepository) GetRoomsByID(ctx context.Context, ids []string) ([]report.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, name FROM study_rooms WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var rooms []report.Room
	err = repo.db.SelectContext(ctx, &rooms, repo.db.Rebind(query), args...)
	return rooms, err
}

func (repo *reportRepository) DeleteMessage(ctx context.Context, scope report.Scope, messageID string) error {
	_, messagesTable, err := reportTables(scope)
	if err != nil {
		return err
	}
	res, err := repo.db.ExecContext(ctx, `DELETE FROM `+messagesTable+` WHERE id = $1`, messageID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return report.ErrNotFound
	}
	return nil
}

func (repo *reportRepository) DeleteReportsByMessageID(ctx context.Context, scope report.Scope, messageID string) error {
	reportsTable, _, err := reportTables(scope)
	if err != nil {
		return err
	}
	_, err = repo.db.ExecContext(ctx, `DELETE FROM `+reportsTable+` WHERE message_id = $1`, messageID)
	return err
}

func (repo *reportRepository) DeleteReport(ctx context.Context, scope report.Scope, reportID string) error {
	reportsTable, _, err := reportTables(scope)
	if err != nil {
		return err
	}
	res, err := repo.db.ExecContext(ctx, `DELETE FROM `+reportsTable+` WHERE id = $1`, reportID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return report.ErrNotFound
	}
	return nil
}
