package report

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/profile"
)

type Service struct {
	repo     Repository
	profiles profile.Repository
	logger   core.Logger
}

func NewService(repo Repository, profiles profile.Repository, logger core.Logger) *Service {
	return &Service{repo: repo, profiles: profiles, logger: logger}
}

// Query returns the moderation queue for a scope with messages, reporter
// profiles and (study-room scope) rooms resolved. Store errors on the report
// list surface; failed side lookups degrade to nil members.
func (svc *Service) Query(ctx context.Context, scope Scope) ([]Resolved, error) {
	if !scope.Valid() {
		return nil, ErrUnknownScope
	}

	reports, err := svc.repo.QueryReports(ctx, scope)
	if err != nil {
		return nil, errors.Wrap(err, "querying reports")
	}
	if len(reports) == 0 {
		return []Resolved{}, nil
	}

	messages, err := core.BatchResolve(
		core.CollectKeys(reports, func(r Report) string { return r.MessageID }),
		func(ids []string) ([]Message, error) { return svc.repo.GetMessagesByID(ctx, scope, ids) },
		func(m Message) string { return m.ID },
	)
	if err != nil {
		svc.logger.Error("resolving reported messages", errors.Wrap(err, "resolving reported messages"))
		messages = map[string]Message{}
	}

	reporters, err := core.BatchResolve(
		core.CollectKeys(reports, func(r Report) string { return r.ReporterID }),
		func(ids []string) ([]profile.Profile, error) { return svc.profiles.GetProfilesByID(ctx, ids) },
		func(p profile.Profile) string { return p.ID },
	)
	if err != nil {
		svc.logger.Error("resolving reporter profiles", errors.Wrap(err, "resolving reporter profiles"))
		reporters = map[string]profile.Profile{}
	}

	var rooms map[string]Room
	if scope == ScopeStudyRoom {
		rooms, err = core.BatchResolve(
			core.CollectKeys(reports, func(r Report) string { return r.RoomID }),
			func(ids []string) ([]Room, error) { return svc.repo.GetRoomsByID(ctx, ids) },
			func(r Room) string { return r.ID },
		)
		if err != nil {
			svc.logger.Error("resolving study rooms", errors.Wrap(err, "resolving study rooms"))
			rooms = map[string]Room{}
		}
	}

	resolved := make([]Resolved, 0, len(reports))
	for _, rep := range reports {
		res := Resolved{Report: rep}
		if msg, ok := messages[rep.MessageID]; ok {
			res.Message = &msg
		}
		if reporter, ok := reporters[rep.ReporterID]; ok {
			res.Reporter = &reporter
		}
		if room, ok := rooms[rep.RoomID]; ok {
			res.Room = &room
		}
		resolved = append(resolved, res)
	}
	return resolved, nil
}

// DeleteMessage removes a reported message and then its reports. Irreversible.
// A failure cleaning up the reports is logged, not surfaced: the message is
// already gone and the stale reports resolve to "Message deleted".
func (svc *Service) DeleteMessage(ctx context.Context, scope Scope, messageID string) error {
	if !scope.Valid() {
		return ErrUnknownScope
	}
	if err := svc.repo.DeleteMessage(ctx, scope, messageID); err != nil {
		return errors.Wrap(err, "deleting message")
	}
	if err := svc.repo.DeleteReportsByMessageID(ctx, scope, messageID); err != nil {
		svc.logger.Error("deleting reports of deleted message", errors.Wrap(err, "deleting reports"))
	}
	return nil
}

// Dismiss removes a single report, leaving its message visible. Irreversible.
func (svc *Service) Dismiss(ctx context.Context, scope Scope, reportID string) error {
	if !scope.Valid() {
		return ErrUnknownScope
	}
	return errors.Wrap(svc.repo.DeleteReport(ctx, scope, reportID), "dismissing report")
}
