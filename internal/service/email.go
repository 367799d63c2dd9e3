package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// TemplateKind is the closed set of transactional templates. A switch
// over it is exhaustive, so an unknown template cannot reach the
// provider at runtime.
type TemplateKind int

const (
	TemplateAccountCreation TemplateKind = iota
	TemplateLoginVerification
	TemplatePasswordReset
)

// TemplateForPurpose picks the email template for an OTP purpose.
func TemplateForPurpose(purpose string) TemplateKind {
	switch purpose {
	case "signup", "accountCreation":
		return TemplateAccountCreation
	case "resetPassword":
		return TemplatePasswordReset
	default:
		return TemplateLoginVerification
	}
}

// EmailService delivers transactional email through Resend. It holds
// no mutable state and is safe for concurrent use. Delivery is
// synchronous with no retry: a provider failure propagates to the
// caller, which decides whether the enclosing operation fails.
type EmailService struct {
	client     *resend.Client
	fromEmail  string
	senderName string
	appName    string
	isDev      bool
}

func NewEmailService(apiKey, fromEmail, senderName, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		senderName: senderName,
		appName:    appName,
		isDev:      isDev,
	}
}

// SendOTP renders the template for kind and delivers the code to the
// destination address.
func (s *EmailService) SendOTP(ctx context.Context, to string, kind TemplateKind, code string) error {
	var subject, html string
	switch kind {
	case TemplateAccountCreation:
		subject, html = accountCreationTemplate(s.appName, code)
	case TemplatePasswordReset:
		subject, html = passwordResetTemplate(s.appName, code)
	default:
		subject, html = loginVerificationTemplate(s.appName, code, to)
	}

	return s.deliver(ctx, to, subject, html, kind)
}

func (s *EmailService) deliver(ctx context.Context, to, subject, html string, kind TemplateKind) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "template", kind, "to", to, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.senderName, s.fromEmail),
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("email sent", "template", kind, "to", to, "provider_message_id", sent.Id)
	return nil
}
