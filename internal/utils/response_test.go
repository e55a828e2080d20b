package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FINDME_BACK-END/internal/dto"
)

func TestWriteJSONResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONResponse(rec, http.StatusCreated, map[string]string{"message": "done"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"done"}`, rec.Body.String())
}

func TestWriteErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorResponse(rec, http.StatusNotFound, "Not Found", "Person not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Not Found", body.Error)
	assert.Equal(t, "Person not found", body.Message)
}

func TestDecodeJSONRequest(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@example.com"}`))
		rec := httptest.NewRecorder()

		var dst struct {
			Email string `json:"email"`
		}
		require.NoError(t, DecodeJSONRequest(rec, req, &dst))
		assert.Equal(t, "a@example.com", dst.Email)
	})

	t.Run("malformed body writes 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()

		var dst struct{}
		require.Error(t, DecodeJSONRequest(rec, req, &dst))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
