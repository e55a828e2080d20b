package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"FINDME_BACK-END/internal/verification"
)

func newTestForgotPasswordHandler(t *testing.T) *ForgotPasswordHandler {
	t.Helper()
	ledger := verification.NewLedger(
		verification.NewMemoryStore(time.Minute),
		verification.SenderFunc(func(to, code string) error { return nil }),
	)
	return NewForgotPasswordHandler(nil, ledger, testConfig())
}

func TestForgotPasswordValidation(t *testing.T) {
	h := newTestForgotPasswordHandler(t)

	rec := postJSON(t, h.ForgotPassword, "/api/forgot-password", `{"email":""}`)
	assert.Equal(t, 400, rec.Code)

	rec = postJSON(t, h.ForgotPassword, "/api/forgot-password", `{not json`)
	assert.Equal(t, 400, rec.Code)
}

func TestVerifyOTPValidation(t *testing.T) {
	h := newTestForgotPasswordHandler(t)

	rec := postJSON(t, h.VerifyOTP, "/api/verify-otp", `{"email":"a@example.com"}`)
	assert.Equal(t, 400, rec.Code)

	rec = postJSON(t, h.VerifyOTP, "/api/verify-otp", `{"code":"123456"}`)
	assert.Equal(t, 400, rec.Code)
}

func TestResetPasswordValidation(t *testing.T) {
	h := newTestForgotPasswordHandler(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"missing token", `{"new_password":"secret1"}`, 400},
		{"missing password", `{"reset_token":"abc"}`, 400},
		{"short password", `{"reset_token":"abc","new_password":"ab"}`, 400},
		{"garbage token", `{"reset_token":"not-a-jwt","new_password":"secret1"}`, 401},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.ResetPassword, "/api/reset-password", tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
