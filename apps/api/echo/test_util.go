package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/export"
	"github.com/trezcool/darasa/core/feedback"
	"github.com/trezcool/darasa/core/partner"
	"github.com/trezcool/darasa/core/report"
	"github.com/trezcool/darasa/core/user"
	blobsvc "github.com/trezcool/darasa/services/blob"
	cachesvc "github.com/trezcool/darasa/services/cache"
	dummydb "github.com/trezcool/darasa/storage/database/dummy"
	testutil "github.com/trezcool/darasa/tests"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

// fakeEmailService records messages instead of sending them.
type fakeEmailService struct {
	mu       sync.Mutex
	messages []*core.EmailMessage
}

var _ core.EmailService = (*fakeEmailService)(nil)

func (svc *fakeEmailService) SendMessages(messages ...*core.EmailMessage) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.messages = append(svc.messages, messages...)
}

func newTestConfig() *core.Config {
	return &core.Config{
		TestMode:  true,
		Env:       "TEST",
		AppName:   "Darasa Admin",
		SecretKey: "secret",
		Server: core.ServerConfig{
			Host:               "localhost",
			JWTExpirationDelta: 10 * time.Minute,
		},
		Export: core.ExportConfig{
			DefaultPageSize:   25,
			PageSizeOptions:   []int{25, 50, 100},
			DirectoryPageSize: 1000,
			FetchTimeout:      5 * time.Second,
		},
	}
}

type testEnv struct {
	server  *Server
	db      *dummydb.DB
	deps    ServerDeps
	storage *blobsvc.DummyStorage
	emails  *fakeEmailService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := dummydb.Open()
	require.NoError(t, err)

	conf := newTestConfig()
	logger := testutil.NopLogger{}
	storage := blobsvc.NewDummyStorage()
	emails := &fakeEmailService{}

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	profileRepo := dummydb.NewProfileRepository(db)
	deps := ServerDeps{
		Conf:        conf,
		Logger:      logger,
		UserSvc:     user.NewService(dummydb.NewUserRepository(db)),
		FeedbackSvc: feedback.NewService(dummydb.NewFeedbackRepository(db), profileRepo, logger),
		ReportSvc:   report.NewService(dummydb.NewReportRepository(db), profileRepo, logger),
		PartnerSvc:  partner.NewService(dummydb.NewPartnerRepository(db), storage, logger),
		ExportSvc: export.NewService(
			dummydb.NewIdentityDirectory(db),
			profileRepo,
			cachesvc.NewMemoryCache(),
			logger,
			conf.Export.DirectoryPageSize,
		),
		EmailSvc:   emails,
		Validate:   validate,
		Translator: translator,
	}

	return &testEnv{
		server:  NewServer(deps),
		db:      db,
		deps:    deps,
		storage: storage,
		emails:  emails,
	}
}

// adminToken creates an active admin account and returns a token for it.
func (env *testEnv) adminToken(t *testing.T) string {
	usr := testutil.CreateUser(
		t, dummydb.NewUserRepository(env.db),
		"Admin", "admin", "admin@test.cd", "LordMuntu", user.AllRoles, true,
	)
	return getToken(t, usr)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
