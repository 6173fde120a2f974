package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/user"
	dummydb "github.com/trezcool/darasa/storage/database/dummy"
	testutil "github.com/trezcool/darasa/tests"
)

func Test_home(t *testing.T) {
	env := newTestEnv(t)

	req, rec := newRequest(http.MethodGet, "/")
	env.server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Darasa Admin API!", rec.Body.String())
}

func Test_authApi_login(t *testing.T) {
	env := newTestEnv(t)
	usrRepo := dummydb.NewUserRepository(env.db)
	testutil.CreateUser(t, usrRepo, "Awa", "awa", "awa@test.cd", "LordMuntu", user.AllRoles, true)
	testutil.CreateUser(t, usrRepo, "Koko", "koko", "koko@test.cd", "LordMuntu", nil, false)

	path := "/v1/admin/auth/login"
	tests := []httpTest{
		{
			name:     "empty body",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"username":"this field is required","password":"this field is required"}`),
		},
		{
			name:     "unknown username",
			body:     []byte(`{"username":"who","password":"LordMuntu"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name:     "wrong password",
			body:     []byte(`{"username":"awa","password":"nope"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name:     "deactivated account",
			body:     []byte(`{"username":"koko","password":"LordMuntu"}`),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, path, tt.body)
			env.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("valid credentials", func(t *testing.T) {
		// email works too; username matching is case-insensitive
		req, rec := newRequest(http.MethodPost, path, []byte(`{"username":"AWA@test.cd","password":"LordMuntu"}`))
		env.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)

		usr, err := env.deps.UserSvc.GetByUsernameOrEmail(req.Context(), "awa")
		require.NoError(t, err)
		assert.False(t, usr.LastLogin.IsZero())
	})
}

func Test_adminOnlyEndpoints(t *testing.T) {
	env := newTestEnv(t)
	usr := testutil.CreateUser(
		t, dummydb.NewUserRepository(env.db),
		"Koko", "koko", "koko@test.cd", "LordMuntu", nil, true, // not an admin
	)

	tests := []httpTest{
		{
			name:     "missing token",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name:     "non-admin token",
			token:    getToken(t, usr),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name:     "admin token",
			token:    env.adminToken(t),
			wantCode: http.StatusOK,
			wantData: []byte(`[]`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/admin/feedback", tt.token)
			env.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
