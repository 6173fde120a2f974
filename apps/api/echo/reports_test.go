package echoapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/profile"
	"github.com/trezcool/darasa/core/report"
	dummydb "github.com/trezcool/darasa/storage/database/dummy"
)

func Test_reportApi(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	name := "Awa"
	dummydb.NewProfileRepository(env.db).SeedProfile(profile.Profile{ID: "u1", DisplayName: &name})

	repRepo := dummydb.NewReportRepository(env.db)
	now := time.Now().UTC()
	room := repRepo.SeedRoom(report.Room{Name: "Algebra"})
	msg := repRepo.SeedMessage(report.ScopeStudyRoom, report.Message{Content: "spam", UserID: "u1", CreatedAt: now})
	repRepo.SeedReport(report.ScopeStudyRoom, report.Report{
		MessageID: msg.ID, ReporterID: "u1", Reason: "spam", RoomID: room.ID, CreatedAt: now,
	})
	repRepo.SeedReport(report.ScopeStudyRoom, report.Report{
		MessageID: msg.ID, ReporterID: "gone", Reason: "abuse", RoomID: room.ID, CreatedAt: now.Add(time.Minute),
	})
	commMsg := repRepo.SeedMessage(report.ScopeCommunity, report.Message{Content: "off-topic", UserID: "u1", CreatedAt: now})
	commRep := repRepo.SeedReport(report.ScopeCommunity, report.Report{
		MessageID: commMsg.ID, ReporterID: "u1", Reason: "off-topic", CreatedAt: now,
	})

	tests := []httpTest{
		{
			name:     "unknown scope",
			method:   http.MethodGet,
			path:     "/v1/admin/reports/dms",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name:     "query study-room scope",
			method:   http.MethodGet,
			path:     "/v1/admin/reports/study-room",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, mustQueryReports(t, env, report.ScopeStudyRoom)),
		},
		{
			name:     "query community scope",
			method:   http.MethodGet,
			path:     "/v1/admin/reports/community",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, mustQueryReports(t, env, report.ScopeCommunity)),
		},
		{
			name:     "dismiss report",
			method:   http.MethodDelete,
			path:     "/v1/admin/reports/community/" + commRep.ID,
			wantCode: http.StatusNoContent,
		},
		{
			name:     "dismiss missing report",
			method:   http.MethodDelete,
			path:     "/v1/admin/reports/community/" + commRep.ID,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name:     "destroy message cascades its reports",
			method:   http.MethodDelete,
			path:     "/v1/admin/reports/study-room/messages/" + msg.ID,
			wantCode: http.StatusNoContent,
		},
		{
			name:     "destroy missing message",
			method:   http.MethodDelete,
			path:     "/v1/admin/reports/study-room/messages/" + msg.ID,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, token)
			env.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// destroying the message removed both study-room reports with it
	assert.Empty(t, mustQueryReports(t, env, report.ScopeStudyRoom))
}

func mustQueryReports(t *testing.T, env *testEnv, scope report.Scope) []report.Resolved {
	t.Helper()
	resolved, err := env.deps.ReportSvc.Query(context.Background(), scope)
	require.NoError(t, err)
	return resolved
}
