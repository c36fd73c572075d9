package utils

import (
	"fmt"
	"net/smtp"
	"time"

	"AIRESCAPE_BACK-END/internal/config"
)

// Mailer sends transactional email
type Mailer interface {
	SendVerificationCode(to, code string, ttl time.Duration) error
	SendBookingConfirmation(to, name string, bookingID int64, summary string) error
}

// EmailService handles email sending operations over SMTP
type EmailService struct {
	config *config.EmailConfig
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{
		config: cfg,
		send:   smtp.SendMail,
	}
}

// SendVerificationCode sends a password reset code to the user's email
func (e *EmailService) SendVerificationCode(to, code string, ttl time.Duration) error {
	subject := "Password Reset Verification Code"
	body := fmt.Sprintf(`
Hello,

You requested to reset your AirEscape password.

Your verification code is: %s

This code will expire in %d minutes.

If you didn't request this, please ignore this email.

Best regards,
AirEscape Team
	`, code, int(ttl.Minutes()))

	return e.sendEmail(to, subject, body)
}

// SendBookingConfirmation notifies the traveler that a booking was recorded
func (e *EmailService) SendBookingConfirmation(to, name string, bookingID int64, summary string) error {
	subject := fmt.Sprintf("Your AirEscape booking #%d", bookingID)
	body := fmt.Sprintf(`
Hello %s,

Thank you for booking with AirEscape.

%s

You can download your e-ticket from the bookings page at any time.

Best regards,
AirEscape Team
	`, name, summary)

	return e.sendEmail(to, subject, body)
}

// sendEmail sends an email using SMTP
func (e *EmailService) sendEmail(to, subject, body string) error {
	// Check if credentials are set
	if e.config.SMTPUsername == "" || e.config.SMTPPassword == "" {
		return fmt.Errorf("email credentials not configured")
	}

	auth := smtp.PlainAuth("", e.config.SMTPUsername, e.config.SMTPPassword, e.config.SMTPHost)

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

	addr := e.config.SMTPHost + ":" + e.config.SMTPPort
	if err := e.send(addr, auth, fromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
