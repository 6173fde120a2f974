package export

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

type (
	// UserEmail is one row of the export screen: a profile joined with its
	// auth identity's email. Rows whose identity has no email are never emitted.
	UserEmail struct {
		ID          string    `json:"id"`
		DisplayName *string   `json:"display_name"`
		Email       string    `json:"email"`
		CreatedAt   time.Time `json:"created_at"` // UTC
	}

	// Page is one page of the export result set.
	Page struct {
		Users      []UserEmail `json:"users"`
		Total      int         `json:"total"`
		Page       int         `json:"page"`
		Limit      int         `json:"limit"`
		TotalPages int         `json:"total_pages"`
	}

	// Identity is an auth identity with its resolved email. Owned by the auth
	// system; read-only here.
	Identity struct {
		ID    string `db:"id"`
		Email string `db:"email"`
	}

	// IdentityDirectory lists auth identities. Directories page their results;
	// a single call returns at most perPage pairs and callers must keep paging
	// until a short page comes back.
	IdentityDirectory interface {
		ListIdentities(ctx context.Context, page, perPage int) ([]Identity, error)
	}

	// SnapshotCache remembers the full matching email set per search query so
	// a fresh select-all result can be reused when resolving.
	SnapshotCache interface {
		GetSnapshot(ctx context.Context, query string) ([]string, bool)
		SetSnapshot(ctx context.Context, query string, emails []string)
	}
)

// PageQuery defaults; limit options come from config.
const (
	DefaultPage  = 1
	DefaultLimit = 25
)

// PageQuery is the navigable state of the export list. It round-trips through
// URL query parameters so a given view is a shareable link.
type PageQuery struct {
	Page   int
	Limit  int
	Search string
}

// PageQueryFromValues restores a PageQuery from navigation parameters,
// falling back to defaults for missing or invalid values. A limit outside
// `limitOptions` falls back to the default page size.
func PageQueryFromValues(v url.Values, limitOptions []int) PageQuery {
	q := PageQuery{Page: DefaultPage, Limit: DefaultLimit, Search: v.Get("q")}
	if p, err := strconv.Atoi(v.Get("page")); err == nil && p >= 1 {
		q.Page = p
	}
	if l, err := strconv.Atoi(v.Get("limit")); err == nil && validLimit(l, limitOptions) {
		q.Limit = l
	}
	return q
}

// Values serializes the query back into navigation parameters, omitting each
// parameter when it equals its default.
func (q PageQuery) Values() url.Values {
	v := make(url.Values)
	if q.Page > DefaultPage {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit != DefaultLimit {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	return v
}

func validLimit(limit int, options []int) bool {
	if len(options) == 0 {
		return limit == DefaultLimit
	}
	for _, opt := range options {
		if limit == opt {
			return true
		}
	}
	return false
}
