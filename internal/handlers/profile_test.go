package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FINDME_BACK-END/internal/storage"
	"FINDME_BACK-END/internal/utils"
)

func newTestProfileHandler(t *testing.T) *ProfileHandler {
	t.Helper()
	images, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	return NewProfileHandler(nil, images, testConfig())
}

func TestProfileHandleRejectsWrongMethod(t *testing.T) {
	h := newTestProfileHandler(t)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodDelete, "/api/user/profile", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGetProfileRequiresUser(t *testing.T) {
	h := newTestProfileHandler(t)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/user/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateProfileRejectsNonMultipart(t *testing.T) {
	h := newTestProfileHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/api/user/profile",
		bytes.NewReader([]byte(`{"firstName":"Ana"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(utils.WithUserID(req.Context(), uuid.New()))

	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
