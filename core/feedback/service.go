package feedback

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

// queryAll degrades to an empty list on store errors; the screen renders
// "no data" instead of failing.
func (svc *Service) queryAll(ctx context.Context) []Record {
	records, err := svc.repo.QueryAllFeedback(ctx)
	if err != nil {
		svc.logger.Error("querying feedback", errors.Wrap(err, "querying feedback"))
		return nil
	}
	return records
}

// Query returns all feedback, newest first, with submitter profiles resolved.
func (svc *Service) Query(ctx context.Context) []RecordWithProfile {
	records := svc.queryAll(ctx)
	if len(records) == 0 {
		return []RecordWithProfile{}
	}

	userIDs := core.CollectKeys(records, func(r Record) string { return r.UserID })
	profiles, err := core.BatchResolve(
		userIDs,
		func(ids []string) ([]profile.Profile, error) { return svc.profiles.GetProfilesByID(ctx, ids) },
		func(p profile.Profile) string { return p.ID },
	)
	if err != nil {
		svc.logger.Error("resolving feedback profiles", errors.Wrap(err, "resolving feedback profiles"))
		profiles = map[string]profile.Profile{}
	}

	result := make([]RecordWithProfile, 0, len(records))
	for _, rec := range records {
		prof, ok := profiles[rec.UserID]
		if !ok {
			prof = profile.Unknown()
		}
		result = append(result, RecordWithProfile{Record: rec, Profile: prof})
	}
	return result
}

// Breakdown returns the per-feature sentiment tallies.
func (svc *Service) Breakdown(ctx context.Context) []FeatureTally {
	return Breakdown(svc.queryAll(ctx))
}

// Stats returns the overall feedback counters.
func (svc *Service) Stats(ctx context.Context) Stats {
	return ComputeStats(svc.queryAll(ctx))
}

// Delete removes a feedback record. Errors surface to the caller.
func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteFeedback(ctx, id)
}
