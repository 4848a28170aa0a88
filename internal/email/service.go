package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
	"time"

	"github.com/redmonkez12/wardrobe-api/internal/logging"
	"github.com/redmonkez12/wardrobe-api/templates"
)

type message struct {
	Heading string
	Link    string
	Expiry  string
	Year    int
}

// deliverFunc hands a rendered message to the transport
type deliverFunc func(ctx context.Context, to, subject, body string) error

type Service struct {
	smtpHost     string
	smtpPort     string
	smtpUser     string
	smtpPassword string
	fromEmail    string
	frontendURL  string

	verification  *template.Template
	passwordReset *template.Template
	deliver       deliverFunc
}

// NewService parses the embedded templates. With an empty smtpHost emails
// are logged instead of sent, which is what local development wants.
func NewService(smtpHost, smtpPort, smtpUser, smtpPassword, frontendURL string) (*Service, error) {
	verification, err := template.ParseFS(templates.EmailFS, "email/layout.html", "email/verification.html")
	if err != nil {
		return nil, fmt.Errorf("parse verification template: %w", err)
	}
	passwordReset, err := template.ParseFS(templates.EmailFS, "email/layout.html", "email/password_reset.html")
	if err != nil {
		return nil, fmt.Errorf("parse password reset template: %w", err)
	}

	s := &Service{
		smtpHost:      smtpHost,
		smtpPort:      smtpPort,
		smtpUser:      smtpUser,
		smtpPassword:  smtpPassword,
		fromEmail:     smtpUser,
		frontendURL:   frontendURL,
		verification:  verification,
		passwordReset: passwordReset,
	}

	s.deliver = s.sendSMTP
	if smtpHost == "" {
		s.deliver = logOnly
	}

	return s, nil
}

// SendVerificationEmail sends an email verification link to the user.
// Callers run it off the request path.
func (s *Service) SendVerificationEmail(ctx context.Context, toEmail, token string) error {
	logger := logging.GetLoggerFromContext(ctx)

	body, err := render(s.verification, message{
		Heading: "Welcome to Wardrobe",
		Link:    s.link("/verify-email", token),
		Expiry:  "24 hours",
	})
	if err != nil {
		logger.Error("failed to render email template", "error", err)
		return err
	}

	if err := s.deliver(ctx, toEmail, "Verify your email address", body); err != nil {
		logger.Error("failed to send verification email", "email", toEmail, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("verification email sent", "email", toEmail)
	return nil
}

// SendPasswordResetEmail sends a password reset link to the user.
// Callers run it off the request path.
func (s *Service) SendPasswordResetEmail(ctx context.Context, toEmail, token string) error {
	logger := logging.GetLoggerFromContext(ctx)

	body, err := render(s.passwordReset, message{
		Heading: "Password Reset Request",
		Link:    s.link("/reset-password", token),
		Expiry:  "1 hour",
	})
	if err != nil {
		logger.Error("failed to render password reset email template", "error", err)
		return err
	}

	if err := s.deliver(ctx, toEmail, "Reset your password", body); err != nil {
		logger.Error("failed to send password reset email", "email", toEmail, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("password reset email sent", "email", toEmail)
	return nil
}

func (s *Service) link(path, token string) string {
	return fmt.Sprintf("%s%s?token=%s", s.frontendURL, path, url.QueryEscape(token))
}

func render(t *template.Template, msg message) (string, error) {
	msg.Year = time.Now().Year()

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", msg); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

func (s *Service) sendSMTP(_ context.Context, to, subject, body string) error {
	auth := smtp.PlainAuth("", s.smtpUser, s.smtpPassword, s.smtpHost)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s\r\n",
		s.fromEmail, to, subject, body,
	))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	return smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg)
}

func logOnly(ctx context.Context, to, subject, body string) error {
	logging.GetLoggerFromContext(ctx).Debug("SMTP not configured, email not sent",
		"to", to,
		"subject", subject,
		"bytes", len(body),
	)
	return nil
}
