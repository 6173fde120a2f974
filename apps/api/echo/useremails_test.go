package echoapi

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/export"
	"github.com/trezcool/darasa/core/profile"
	dummydb "github.com/trezcool/darasa/storage/database/dummy"
)

func seedUserEmails(env *testEnv, count int) {
	profRepo := dummydb.NewProfileRepository(env.db)
	identDir := dummydb.NewIdentityDirectory(env.db)
	now := time.Now().UTC()
	for i := 1; i <= count; i++ {
		id := fmt.Sprintf("u%02d", i)
		name := fmt.Sprintf("User %02d", i)
		profRepo.SeedProfile(profile.Profile{
			ID:          id,
			DisplayName: &name,
			CreatedAt:   now.Add(time.Duration(i) * time.Minute),
		})
		identDir.SeedIdentity(export.Identity{ID: id, Email: fmt.Sprintf("user%02d@test.cd", i)})
	}
}

func Test_userEmailApi_query(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	token := env.adminToken(t)
	seedUserEmails(env, 30)

	tests := []httpTest{
		{
			name:     "first page by default",
			path:     "/v1/admin/user-emails",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, mustListUsers(t, env, 1, 25, "")),
		},
		{
			name:     "explicit page and limit",
			path:     "/v1/admin/user-emails?page=2&limit=25",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, mustListUsers(t, env, 2, 25, "")),
		},
		{
			name:     "unsupported limit falls back to the default",
			path:     "/v1/admin/user-emails?limit=33",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, mustListUsers(t, env, 1, 25, "")),
		},
		{
			name:     "search matches names and emails",
			path:     "/v1/admin/user-emails?q=user%2003",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, mustListUsers(t, env, 1, 25, "user 03")),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, token)
			env.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("all matching emails", func(t *testing.T) {
		emails, err := env.deps.ExportSvc.AllEmails(ctx, "")
		require.NoError(t, err)
		require.Len(t, emails, 30)

		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, AllEmailsResponse{Emails: emails}),
		}
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/user-emails/all", token)
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func Test_userEmailApi_send(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	t.Run("requires recipients, subject and body", func(t *testing.T) {
		tt := httpTest{
			body:     []byte(`{"emails":[]}`),
			wantCode: http.StatusBadRequest,
		}
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/user-emails/send", token, tt.body)
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		tt := httpTest{
			body:     []byte(`{"emails":["not-an-email"],"subject":"Habari","body":"Karibu!"}`),
			wantCode: http.StatusBadRequest,
		}
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/user-emails/send", token, tt.body)
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("sends one message per distinct recipient", func(t *testing.T) {
		body := []byte(`{"emails":["a@test.cd","b@test.cd","a@test.cd"],"subject":"Habari","body":"Karibu!"}`)
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, SuccessResponse{Success: "Emails queued for delivery."}),
		}
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/user-emails/send", token, body)
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)

		require.Len(t, env.emails.messages, 2)
		for _, msg := range env.emails.messages {
			assert.Len(t, msg.To, 1)
			assert.Equal(t, "Habari", msg.Subject)
		}
	})
}

func mustListUsers(t *testing.T, env *testEnv, page, limit int, query string) export.Page {
	t.Helper()
	p, err := env.deps.ExportSvc.ListUsers(context.Background(), page, limit, query)
	require.NoError(t, err)
	return p
}
