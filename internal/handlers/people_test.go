package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FINDME_BACK-END/internal/storage"
	"FINDME_BACK-END/internal/utils"
)

func newTestPeopleHandler(t *testing.T) *PeopleHandler {
	t.Helper()
	images, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	return NewPeopleHandler(nil, images, testConfig())
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestPeopleHandleRejectsWrongMethod(t *testing.T) {
	h := newTestPeopleHandler(t)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPatch, "/api/people", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPeopleListRequiresUser(t *testing.T) {
	h := newTestPeopleHandler(t)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/people", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPeopleHandleByIDRejectsBadUUID(t *testing.T) {
	h := newTestPeopleHandler(t)

	rec := httptest.NewRecorder()
	h.HandleByID(rec, httptest.NewRequest(http.MethodGet, "/api/people/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPeopleHandleByIDRejectsUnknownAction(t *testing.T) {
	h := newTestPeopleHandler(t)

	rec := httptest.NewRecorder()
	h.HandleByID(rec, httptest.NewRequest(http.MethodPost,
		"/api/people/"+uuid.New().String()+"/archive", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPeopleCreateRequiresUser(t *testing.T) {
	h := newTestPeopleHandler(t)

	body, contentType := multipartBody(t, map[string]string{"fullName": "Jane Doe"})
	req := httptest.NewRequest(http.MethodPost, "/api/people", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPeopleCreateRejectsNonMultipart(t *testing.T) {
	h := newTestPeopleHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/people",
		bytes.NewReader([]byte(`{"fullName":"Jane Doe"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(utils.WithUserID(req.Context(), uuid.New()))

	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPeopleCreateRequiresFullName(t *testing.T) {
	h := newTestPeopleHandler(t)

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"absent", map[string]string{"contactNumber": "555-0100"}},
		{"blank", map[string]string{"fullName": "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartBody(t, tt.fields)
			req := httptest.NewRequest(http.MethodPost, "/api/people", body)
			req.Header.Set("Content-Type", contentType)
			req = req.WithContext(utils.WithUserID(req.Context(), uuid.New()))

			rec := httptest.NewRecorder()
			h.Handle(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
