package export

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/profile"
)

const fallbackDirectoryPageSize = 1000

type Service struct {
	dir         IdentityDirectory
	profiles    profile.Repository
	cache       SnapshotCache
	logger      core.Logger
	dirPageSize int
}

func NewService(dir IdentityDirectory, profiles profile.Repository, cache SnapshotCache, logger core.Logger, dirPageSize int) *Service {
	if dirPageSize <= 0 {
		dirPageSize = fallbackDirectoryPageSize
	}
	return &Service{dir: dir, profiles: profiles, cache: cache, logger: logger, dirPageSize: dirPageSize}
}

// emailsByID pages through the whole identity directory and returns an
// identity id -> email map. Identities without an email are skipped.
func (svc *Service) emailsByID(ctx context.Context) (map[string]string, error) {
	emails := make(map[string]string)
	for page := 1; ; page++ {
		identities, err := svc.dir.ListIdentities(ctx, page, svc.dirPageSize)
		if err != nil {
			return nil, errors.Wrapf(err, "listing identities (page %d)", page)
		}
		for _, ident := range identities {
			if ident.Email != "" {
				emails[ident.ID] = ident.Email
			}
		}
		if len(identities) < svc.dirPageSize {
			return emails, nil
		}
	}
}

// matchingUsers joins profiles with identity emails (dropping rows without
// one) and applies the search filter. Profiles come back newest first and the
// join preserves that order.
func (svc *Service) matchingUsers(ctx context.Context, query string) ([]UserEmail, error) {
	emails, err := svc.emailsByID(ctx)
	if err != nil {
		return nil, err
	}

	profiles, err := svc.profiles.QueryAllProfiles(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying profiles")
	}

	query = core.CleanString(query, true /* lower */)
	users := make([]UserEmail, 0, len(profiles))
	for _, prof := range profiles {
		email, ok := emails[prof.ID]
		if !ok {
			continue
		}
		if query != "" && !matches(prof.DisplayName, email, query) {
			continue
		}
		users = append(users, UserEmail{
			ID:          prof.ID,
			DisplayName: prof.DisplayName,
			Email:       email,
			CreatedAt:   prof.CreatedAt,
		})
	}
	return users, nil
}

// ListUsers returns one page of the export result set.
func (svc *Service) ListUsers(ctx context.Context, page, limit int, query string) (Page, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	users, err := svc.matchingUsers(ctx, query)
	if err != nil {
		return Page{}, core.NewFetchError("fetching users", err)
	}

	total := len(users)
	totalPages := (total + limit - 1) / limit

	from := (page - 1) * limit
	if from > total {
		from = total
	}
	to := from + limit
	if to > total {
		to = total
	}

	return Page{
		Users:      users[from:to],
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// AllEmails returns every email matching the search query across the entire
// result set, de-duplicated, newest profile first. Results are cached per
// query for quick re-resolution after a select-all.
func (svc *Service) AllEmails(ctx context.Context, query string) ([]string, error) {
	key := core.CleanString(query, true /* lower */)
	if cached, ok := svc.cache.GetSnapshot(ctx, key); ok {
		return cached, nil
	}

	users, err := svc.matchingUsers(ctx, query)
	if err != nil {
		return nil, core.NewFetchError("fetching all emails", err)
	}

	emails := make([]string, 0, len(users))
	for _, u := range users {
		emails = append(emails, u.Email)
	}
	emails = DedupEmails(emails)

	svc.cache.SetSnapshot(ctx, key, emails)
	return emails, nil
}

// DedupEmails drops duplicate emails, keeping first appearances in order.
func DedupEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	unique := make([]string, 0, len(emails))
	for _, email := range emails {
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		unique = append(unique, email)
	}
	return unique
}

func matches(displayName *string, email, query string) bool {
	if strings.Contains(strings.ToLower(email), query) {
		return true
	}
	return displayName != nil && strings.Contains(strings.ToLower(*displayName), query)
}
