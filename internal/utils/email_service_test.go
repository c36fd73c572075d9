package utils

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"AIRESCAPE_BACK-END/internal/config"
)

func TestSendVerificationCodeComposesMessage(t *testing.T) {
	cfg := &config.EmailConfig{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     "587",
		SMTPUsername: "mailer@example.com",
		SMTPPassword: "secret",
		FromName:     "AirEscape",
	}
	svc := NewEmailService(cfg)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	svc.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	if err := svc.SendVerificationCode("alice@example.com", "123456", 3*time.Minute); err != nil {
		t.Fatalf("SendVerificationCode: %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %q", gotAddr)
	}
	if gotFrom != "mailer@example.com" {
		t.Errorf("from = %q, want fallback to SMTP username", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "alice@example.com" {
		t.Errorf("to = %v", gotTo)
	}
	body := string(gotMsg)
	if !strings.Contains(body, "123456") || !strings.Contains(body, "expire in 3 minutes") {
		t.Errorf("message missing code or ttl:\n%s", body)
	}
}

func TestSendEmailWithoutCredentials(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{})
	svc.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called without credentials")
		return nil
	}
	if err := svc.SendBookingConfirmation("bob@example.com", "Bob", 1, "Flight AA123"); err == nil {
		t.Fatal("expected error when SMTP credentials are missing")
	}
}

func TestSendEmailWrapsTransportError(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{SMTPUsername: "u", SMTPPassword: "p", SMTPHost: "h", SMTPPort: "25"})
	boom := errors.New("connection refused")
	svc.send = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	err := svc.SendBookingConfirmation("bob@example.com", "Bob", 7, "Hotel stay")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}
