package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FINDME_BACK-END/internal/config"
	"FINDME_BACK-END/internal/dto"
	"FINDME_BACK-END/internal/verification"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:         "test-secret",
			AccessTokenTTL: time.Hour,
		},
		Storage: config.StorageConfig{
			MaxUploadBytes: 10 << 20,
		},
	}
}

func newTestAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	ledger := verification.NewLedger(
		verification.NewMemoryStore(time.Minute),
		verification.SenderFunc(func(to, code string) error { return nil }),
	)
	return NewAuthHandler(nil, ledger, testConfig())
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRegisterRejectsWrongMethod(t *testing.T) {
	h := newTestAuthHandler(t)
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodGet, "/api/register", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	h := newTestAuthHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{not json`},
		{"missing email", `{"password":"secret1","verificationCode":"123456"}`},
		{"missing password", `{"email":"a@example.com","verificationCode":"123456"}`},
		{"missing code", `{"email":"a@example.com","password":"secret1"}`},
		{"short password", `{"email":"a@example.com","password":"abc","verificationCode":"123456"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Register, "/api/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegisterRejectsUnverifiedCode(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(t, h.Register, "/api/register",
		`{"email":"a@example.com","password":"secret1","verificationCode":"123456"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid verification code", decodeError(t, rec).Error)
}

func TestLoginValidation(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(t, h.Login, "/api/login", `{"email":"a@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.Login, "/api/login", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodDelete, "/api/login", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestVerificationValidation(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(t, h.RequestVerification, "/api/register/verify", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email", decodeError(t, rec).Error)

	rec = postJSON(t, h.RequestVerification, "/api/register/verify", `{"email":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
