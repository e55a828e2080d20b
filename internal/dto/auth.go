package dto

// RequestVerificationRequest represents the payload for POST /api/register/verify
type RequestVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RequestVerificationResponse confirms that a verification code was dispatched
type RequestVerificationResponse struct {
	Message   string `json:"message"`
	Email     string `json:"email"`
	ExpiresIn string `json:"expires_in"`
}

// RegisterRequest represents the request payload for user registration
type RegisterRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=6"`
	VerificationCode string `json:"verificationCode" validate:"required,len=6"`
}

// RegisterResponse represents the response after successful registration
type RegisterResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the signed bearer token issued on successful login
type LoginResponse struct {
	Token string `json:"token"`
}

// ForgotPasswordRequest asks for a password-reset code by email
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyOTPRequest carries the email and the received reset code
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

// VerifyOTPResponse returns a short-lived reset token
type VerifyOTPResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"reset_token"`
	ExpiresIn  string `json:"expires_in"`
}

// ResetPasswordRequest carries the reset token and the new password
type ResetPasswordRequest struct {
	ResetToken  string `json:"reset_token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is a bare confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}
