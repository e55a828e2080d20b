package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"FINDME_BACK-END/internal/config"
	"FINDME_BACK-END/internal/dto"
	"FINDME_BACK-END/internal/middleware"
	"FINDME_BACK-END/internal/utils"
	"FINDME_BACK-END/internal/verification"
)

// ForgotPasswordHandler handles the password reset flow: a code is emailed,
// exchanged for a short-lived reset token, and the token authorizes the
// password change.
type ForgotPasswordHandler struct {
	db     *pgxpool.Pool
	ledger *verification.Ledger
	config *config.Config
}

// NewForgotPasswordHandler creates a new ForgotPasswordHandler instance
func NewForgotPasswordHandler(db *pgxpool.Pool, ledger *verification.Ledger, cfg *config.Config) *ForgotPasswordHandler {
	return &ForgotPasswordHandler{db: db, ledger: ledger, config: cfg}
}

// ForgotPassword sends a password reset code to the user's email
// @Summary Request password reset
// @Description Send a 6-digit reset code to the account's email
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Email address"
// @Success 200 {object} dto.RequestVerificationResponse "Reset code sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/forgot-password [post]
func (h *ForgotPasswordHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ForgotPasswordRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required field", "Email is required")
		return
	}

	var userID uuid.UUID
	err := h.db.QueryRow(r.Context(),
		"SELECT id FROM users WHERE email = $1", req.Email).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No account found with this email")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		}
		return
	}

	if err := h.ledger.Request(r.Context(), req.Email); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to send reset code", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.RequestVerificationResponse{
		Message:   "Reset code has been sent to your email",
		Email:     req.Email,
		ExpiresIn: "10 minutes",
	})
}

// VerifyOTP verifies the reset code and returns a reset token
// @Summary Verify reset code
// @Description Exchange the 6-digit code for a temporary reset token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Email and reset code"
// @Success 200 {object} dto.VerifyOTPResponse "Code verified"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired code"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/verify-otp [post]
func (h *ForgotPasswordHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.VerifyOTPRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.Email == "" || req.Code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email and code are required")
		return
	}

	var userID uuid.UUID
	err := h.db.QueryRow(r.Context(),
		"SELECT id FROM users WHERE email = $1", req.Email).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No account found with this email")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		}
		return
	}

	// Consuming here means the code is single-use; the reset token alone
	// authorizes the password change.
	if !h.ledger.VerifyAndConsume(r.Context(), req.Email, req.Code) {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid code", "The reset code is invalid or has expired")
		return
	}

	resetToken, err := middleware.GenerateResetToken(userID, req.Email, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate reset token", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.VerifyOTPResponse{
		Message:    "Code verified successfully",
		ResetToken: resetToken,
		ExpiresIn:  "10 minutes",
	})
}

// ResetPassword resets the user's password using a reset token
// @Summary Reset password
// @Description Set a new password using a valid reset token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.MessageResponse "Password reset successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired reset token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/reset-password [post]
func (h *ForgotPasswordHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ResetPasswordRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.ResetToken == "" || req.NewPassword == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Reset token and new password are required")
		return
	}
	if len(req.NewPassword) < 6 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Password too short", "Password must be at least 6 characters long")
		return
	}

	claims, err := middleware.ValidateResetToken(req.ResetToken, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid reset token", err.Error())
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to hash password", err.Error())
		return
	}

	ct, err := h.db.Exec(r.Context(),
		"UPDATE users SET password_hash = $1 WHERE id = $2",
		string(hashedPassword), claims.UserID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to update password", err.Error())
		return
	}
	if ct.RowsAffected() == 0 {
		utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No account found for this token")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{
		Message: "Password has been reset successfully",
	})
}
