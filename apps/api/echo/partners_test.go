package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/partner"
)

func Test_partnerApi_crud(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	t.Run("create requires name and type", func(t *testing.T) {
		tt := httpTest{
			body:     []byte(`{"type":"library"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"name":"this field is required"}`),
		}
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/partners", token, tt.body)
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	var created partner.Partner
	t.Run("create", func(t *testing.T) {
		body := []byte(`{"name":"Maktaba","type":"library","tags":"books, reading"}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/partners", token, body)
		env.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, []string{"books", "reading"}, created.Tags)
	})

	t.Run("query", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, env.deps.PartnerSvc.Query(context.Background())),
		}
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/partners", token)
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("update", func(t *testing.T) {
		body := []byte(`{"name":"Maktaba Kuu","type":"library"}`)
		req, rec := newAuthRequest(http.MethodPut, "/v1/admin/partners/"+created.ID, token, body)
		env.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var updated partner.Partner
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, "Maktaba Kuu", updated.Name)
		assert.Empty(t, updated.Tags)
	})

	t.Run("update missing", func(t *testing.T) {
		tt := httpTest{
			body:     []byte(`{"name":"x","type":"y"}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		}
		req, rec := newAuthRequest(http.MethodPut, "/v1/admin/partners/nope", token, tt.body)
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("toggle featured", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/partners/"+created.ID+"/featured", token)
		env.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var toggled partner.Partner
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggled))
		assert.True(t, toggled.Featured)
	})

	t.Run("destroy", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/admin/partners/"+created.ID, token)
		env.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)

		req, rec = newAuthRequest(http.MethodDelete, "/v1/admin/partners/"+created.ID, token)
		env.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_partnerApi_uploadLogo(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	t.Run("file is required", func(t *testing.T) {
		body, contentType := newLogoForm(t, "", "", nil)
		rec := doUploadLogo(env, token, body, contentType)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects non-image uploads", func(t *testing.T) {
		body, contentType := newLogoForm(t, "logo.pdf", "application/pdf", []byte("%PDF"))
		rec := doUploadLogo(env, token, body, contentType)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "file")
	})

	t.Run("stores the logo", func(t *testing.T) {
		body, contentType := newLogoForm(t, "my logo.png", "image/png", bytes.Repeat([]byte("p"), 64))
		rec := doUploadLogo(env, token, body, contentType)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp LogoUploadResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.URL, "my-logo.png")
		key := strings.TrimPrefix(resp.URL, "https://storage.local/")
		_, stored := env.storage.Object(key)
		assert.True(t, stored)
	})
}

// newLogoForm builds a multipart body with a single "file" part.
// An empty filename yields a form with no file part at all.
func newLogoForm(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "" {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
		hdr.Set("Content-Type", contentType)
		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doUploadLogo(env *testEnv, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/partners/logo", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	return rec
}
