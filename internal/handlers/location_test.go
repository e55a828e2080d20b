package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"FINDME_BACK-END/internal/utils"
)

func locationRequest(body string, authed bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/location/update", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req = req.WithContext(utils.WithUserID(req.Context(), uuid.New()))
	}
	return req
}

func TestLocationUpdateRequiresUser(t *testing.T) {
	h := NewLocationHandler(nil, testConfig())

	rec := httptest.NewRecorder()
	h.Update(rec, locationRequest(`{"personId":"x","lat":1,"lon":2}`, false))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLocationUpdateRejectsWrongMethod(t *testing.T) {
	h := NewLocationHandler(nil, testConfig())

	rec := httptest.NewRecorder()
	h.Update(rec, httptest.NewRequest(http.MethodGet, "/api/location/update", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestLocationUpdateValidation(t *testing.T) {
	h := NewLocationHandler(nil, testConfig())
	personID := uuid.New().String()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{not json`},
		{"missing personId", `{"lat":13.7,"lon":100.5}`},
		{"missing lat", `{"personId":"` + personID + `","lon":100.5}`},
		{"missing lon", `{"personId":"` + personID + `","lat":13.7}`},
		{"bad person id", `{"personId":"not-a-uuid","lat":13.7,"lon":100.5}`},
		{"bad recordedAt", `{"personId":"` + personID + `","lat":13.7,"lon":100.5,"recordedAt":"yesterday"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Update(rec, locationRequest(tt.body, true))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLocationUpdateZeroCoordinatesAreValid(t *testing.T) {
	// lat/lon of 0 must pass validation; only absence is rejected. The nil
	// pool makes the ownership lookup panic, so recover distinguishes
	// "passed validation" from a 400.
	h := NewLocationHandler(nil, testConfig())
	rec := httptest.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		h.Update(rec, locationRequest(`{"personId":"`+uuid.New().String()+`","lat":0,"lon":0}`, true))
	}()

	assert.NotEqual(t, http.StatusBadRequest, rec.Code)
}
