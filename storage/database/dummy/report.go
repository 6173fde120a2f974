package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/report"
)

type reportRepository struct {
	db *reportTable
}

var _ report.Repository = (*reportRepository)(nil)

func NewReportRepository(db *DB) *reportRepository {
	return &reportRepository{db: db.report}
}

func (repo *reportRepository) tables(scope report.Scope) (map[string]*report.Report, map[string]*report.Message, error) {
	switch scope {
	case report.ScopeCommunity:
		return repo.db.communityReports, repo.db.communityMessages, nil
	case report.ScopeStudyRoom:
		return repo.db.studyRoomReports, repo.db.studyRoomMessages, nil
	default:
		return nil, nil, report.ErrUnknownScope
	}
}

// SeedMessage is a test helper.
func (repo *reportRepository) SeedMessage(scope report.Scope, msg report.Message) report.Message {
	repo.db.Lock()
	defer repo.db.Unlock()

	_, messages, err := repo.tables(scope)
	if err != nil {
		return msg
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	messages[msg.ID] = &msg
	return msg
}

// SeedReport is a test helper.
func (repo *reportRepository) SeedReport(scope report.Scope, rep report.Report) report.Report {
	repo.db.Lock()
	defer repo.db.Unlock()

	reports, _, err := repo.tables(scope)
	if err != nil {
		return rep
	}
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	reports[rep.ID] = &rep
	return rep
}

// SeedRoom is a test helper.
func (repo *reportRepository) SeedRoom(room report.Room) report.Room {
	repo.db.Lock()
	defer repo.db.Unlock()

	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	repo.db.rooms[room.ID] = &room
	return room
}

func (repo *reportRepository) QueryReports(_ context.Context, scope report.Scope) ([]report.Report, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	reports, _, err := repo.tables(scope)
	if err != nil {
		return nil, err
	}
	all := make([]report.Report, 0, len(reports))
	for _, rep := range reports {
		all = append(all, *rep)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}

func (repo *reportRepository) GetMessagesByID(_ context.Context, scope report.Scope, ids []string) ([]report.Message, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	_, messages, err := repo.tables(scope)
	if err != nil {
		return nil, err
	}
	found := make([]report.Message, 0, len(ids))
	for _, id := range ids {
		if msg, ok := messages[id]; ok {
			found = append(found, *msg)
		}
	}
	return found, nil
}

func (repo *reportRepository) GetRoomsByID(_ context.Context, ids []string) ([]report.Room, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	found := make([]report.Room, 0, len(ids))
	for _, id := range ids {
		if room, ok := repo.db.rooms[id]; ok {
			found = append(found, *room)
		}
	}
	return found, nil
}

func (repo *reportRepository) DeleteMessage(_ context.Context, scope report.Scope, messageID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	_, messages, err := repo.tables(scope)
	if err != nil {
		return err
	}
	if _, ok := messages[messageID]; !ok {
		return report.ErrNotFound
	}
	delete(messages, messageID)
	return nil
}

func (repo *reportRepository) DeleteReportsByMessageID(_ context.Context, scope report.Scope, messageID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	reports, _, err := repo.tables(scope)
	if err != nil {
		return err
	}
	for id, rep := range reports {
		if rep.MessageID == messageID {
			delete(reports, id)
		}
	}
	return nil
}

func (repo *reportRepository) DeleteReport(_ context.Context, scope report.Scope, reportID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	reports, _, err := repo.tables(scope)
	if err != nil {
		return err
	}
	if _, ok := reports[reportID]; !ok {
		return report.ErrNotFound
	}
	delete(reports, reportID)
	return nil
}
