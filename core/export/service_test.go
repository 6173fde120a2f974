package export

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/profile"
	testutil "github.com/trezcool/darasa/tests"
)

// fakeDirectory pages a fixed identity list the way a hosted auth directory
// would, recording how many pages were requested.
type fakeDirectory struct {
	identities []Identity
	pagesAsked int
	err        error
}

func (d *fakeDirectory) ListIdentities(_ context.Context, page, perPage int) ([]Identity, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.pagesAsked++
	from := (page - 1) * perPage
	if from >= len(d.identities) {
		return nil, nil
	}
	to := from + perPage
	if to > len(d.identities) {
		to = len(d.identities)
	}
	return d.identities[from:to], nil
}

type fakeProfileRepo struct {
	profiles []profile.Profile
}

func (r *fakeProfileRepo) GetProfilesByID(_ context.Context, ids []string) ([]profile.Profile, error) {
	found := make([]profile.Profile, 0, len(ids))
	for _, p := range r.profiles {
		for _, id := range ids {
			if p.ID == id {
				found = append(found, p)
			}
		}
	}
	return found, nil
}

func (r *fakeProfileRepo) QueryAllProfiles(context.Context) ([]profile.Profile, error) {
	return r.profiles, nil
}

type fakeCache struct {
	mu        sync.Mutex
	snapshots map[string][]string
	hits      int
}

func newFakeCache() *fakeCache {
	return &fakeCache{snapshots: make(map[string][]string)}
}

func (c *fakeCache) GetSnapshot(_ context.Context, query string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	emails, ok := c.snapshots[query]
	if ok {
		c.hits++
	}
	return emails, ok
}

func (c *fakeCache) SetSnapshot(_ context.Context, query string, emails []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[query] = emails
}

func seedData(n int) (*fakeDirectory, *fakeProfileRepo) {
	dir := &fakeDirectory{}
	repo := &fakeProfileRepo{}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("id-%03d", i)
		name := fmt.Sprintf("User %03d", i)
		dir.identities = append(dir.identities, Identity{ID: id, Email: fmt.Sprintf("user%03d@test.cd", i)})
		// newest first, like the store returns them
		repo.profiles = append([]profile.Profile{{
			ID:          id,
			DisplayName: &name,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}}, repo.profiles...)
	}
	return dir, repo
}

func Test_Service_ListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("pages through the whole directory", func(t *testing.T) {
		dir, repo := seedData(5)
		// directory page size 2 -> identities span 3 pages
		svc := NewService(dir, repo, newFakeCache(), testutil.NopLogger{}, 2)

		page, err := svc.ListUsers(ctx, 1, 25, "")
		require.NoError(t, err)
		assert.Equal(t, 5, page.Total)
		// every user beyond the first directory page made it into the join
		assert.GreaterOrEqual(t, dir.pagesAsked, 3)
	})

	t.Run("pagination math", func(t *testing.T) {
		dir, repo := seedData(47)
		svc := NewService(dir, repo, newFakeCache(), testutil.NopLogger{}, 1000)

		page, err := svc.ListUsers(ctx, 1, 25, "")
		require.NoError(t, err)
		assert.Equal(t, 47, page.Total)
		assert.Equal(t, 2, page.TotalPages)
		assert.Len(t, page.Users, 25)

		page, err = svc.ListUsers(ctx, 2, 25, "")
		require.NoError(t, err)
		assert.Len(t, page.Users, 22)

		// out-of-range page comes back empty, not an error
		page, err = svc.ListUsers(ctx, 9, 25, "")
		require.NoError(t, err)
		assert.Empty(t, page.Users)
	})

	t.Run("newest profiles first", func(t *testing.T) {
		dir, repo := seedData(3)
		svc := NewService(dir, repo, newFakeCache(), testutil.NopLogger{}, 1000)

		page, err := svc.ListUsers(ctx, 1, 25, "")
		require.NoError(t, err)
		require.Len(t, page.Users, 3)
		assert.Equal(t, "user003@test.cd", page.Users[0].Email)
		assert.Equal(t, "user001@test.cd", page.Users[2].Email)
	})

	t.Run("search matches display name and email, case-insensitive", func(t *testing.T) {
		dir, repo := seedData(20)
		svc := NewService(dir, repo, newFakeCache(), testutil.NopLogger{}, 1000)

		page, err := svc.ListUsers(ctx, 1, 25, "USER 00")
		require.NoError(t, err)
		assert.Equal(t, 9, page.Total)

		page, err = svc.ListUsers(ctx, 1, 25, "user013@")
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)
	})

	t.Run("profiles without an identity email are dropped", func(t *testing.T) {
		dir, repo := seedData(3)
		dir.identities[1].Email = ""
		svc := NewService(dir, repo, newFakeCache(), testutil.NopLogger{}, 1000)

		page, err := svc.ListUsers(ctx, 1, 25, "")
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
	})

	t.Run("directory failures surface as fetch errors", func(t *testing.T) {
		dir, repo := seedData(3)
		dir.err = errors.New("directory down")
		svc := NewService(dir, repo, newFakeCache(), testutil.NopLogger{}, 1000)

		_, err := svc.ListUsers(ctx, 1, 25, "")
		require.Error(t, err)
		assert.True(t, core.IsFetchError(err))
	})
}

func Test_Service_AllEmails(t *testing.T) {
	ctx := context.Background()

	t.Run("dedups and caches per query", func(t *testing.T) {
		dir, repo := seedData(3)
		dir.identities[2].Email = dir.identities[0].Email // duplicate email
		cache := newFakeCache()
		svc := NewService(dir, repo, cache, testutil.NopLogger{}, 1000)

		emails, err := svc.AllEmails(ctx, "")
		require.NoError(t, err)
		assert.Len(t, emails, 2)

		_, err = svc.AllEmails(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, 1, cache.hits)
	})

	t.Run("query key is normalized", func(t *testing.T) {
		dir, repo := seedData(3)
		cache := newFakeCache()
		svc := NewService(dir, repo, cache, testutil.NopLogger{}, 1000)

		_, err := svc.AllEmails(ctx, "  User ")
		require.NoError(t, err)
		_, err = svc.AllEmails(ctx, "user")
		require.NoError(t, err)
		assert.Equal(t, 1, cache.hits)
	})
}

func Test_DedupEmails(t *testing.T) {
	emails := []string{"a@test.cd", "b@test.cd", "a@test.cd", "c@test.cd", "b@test.cd"}
	assert.Equal(t, []string{"a@test.cd", "b@test.cd", "c@test.cd"}, DedupEmails(emails))
	assert.Empty(t, DedupEmails(nil))
}
