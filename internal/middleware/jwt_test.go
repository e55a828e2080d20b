package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FINDME_BACK-END/internal/config"
	"FINDME_BACK-END/internal/utils"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:         "test-secret",
		AccessTokenTTL: time.Hour,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := GenerateToken(userID, "a@example.com", cfg)
	require.NoError(t, err)

	claims, err := ValidateToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "a@example.com", testJWTConfig())
	require.NoError(t, err)

	_, err = ValidateToken(token, &config.JWTConfig{Secret: "other-secret", AccessTokenTTL: time.Hour})
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: -time.Hour}

	token, err := GenerateToken(uuid.New(), "a@example.com", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, cfg)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	var gotUserID uuid.UUID
	var gotOK bool
	next := func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = utils.GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}
	handler := AuthMiddleware(next, cfg)

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/api/people", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Unauthorized", body["error"])
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/people", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/people", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := GenerateToken(userID, "a@example.com", cfg)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/people", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, gotOK)
		assert.Equal(t, userID, gotUserID)
	})
}

func TestResetTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := GenerateResetToken(userID, "a@example.com", cfg)
	require.NoError(t, err)

	claims, err := ValidateResetToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "password_reset", claims.Subject)
}

func TestValidateResetTokenRejectsAccessToken(t *testing.T) {
	cfg := testJWTConfig()

	token, err := GenerateToken(uuid.New(), "a@example.com", cfg)
	require.NoError(t, err)

	_, err = ValidateResetToken(token, cfg)
	assert.Error(t, err, "an access token must not pass as a reset token")
}
