package utils

import (
	"fmt"
	"net/smtp"

	"FINDME_BACK-END/internal/config"
)

// EmailService handles email sending operations
type EmailService struct {
	config *config.EmailConfig
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{
		config: cfg,
	}
}

// SendVerificationCode sends an account verification code to the address
func (e *EmailService) SendVerificationCode(to, code string) error {
	subject := "Account Verification Code - FindMe"
	body := fmt.Sprintf(`
Welcome to FindMe,

Your verification code is: %s

This code will expire in 10 minutes.

If you didn't request this, please ignore this email.

Best regards,
FindMe Team
	`, code)

	return e.sendEmail(to, subject, body)
}

// SendPasswordResetCode sends a password reset code to the address
func (e *EmailService) SendPasswordResetCode(to, code string) error {
	subject := "Password Reset Code - FindMe"
	body := fmt.Sprintf(`
Hello,

You requested to reset your FindMe password.

Your verification code is: %s

This code will expire in 10 minutes.

If you didn't request this, please ignore this email.

Best regards,
FindMe Team
	`, code)

	return e.sendEmail(to, subject, body)
}

// sendEmail sends an email using SMTP
func (e *EmailService) sendEmail(to, subject, body string) error {
	// Check if credentials are set
	if e.config.SMTPUsername == "" || e.config.SMTPPassword == "" {
		return fmt.Errorf("email credentials not configured")
	}

	// Setup authentication
	auth := smtp.PlainAuth("", e.config.SMTPUsername, e.config.SMTPPassword, e.config.SMTPHost)

	// Compose message
	fromEmail := e.config.FromEmail
	if fromEmail == "" {
		fromEmail = e.config.SMTPUsername
	}

	message := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"\r\n"+
			"%s\r\n",
		e.config.FromName, fromEmail, to, subject, body))

	// Send email
	addr := e.config.SMTPHost + ":" + e.config.SMTPPort
	err := smtp.SendMail(addr, auth, fromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
