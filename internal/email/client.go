// Package email sends the transactional messages of the storefront.
package email

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/resendlabs/resend-go"

	"github.com/vitalrecife/storefront/internal/config"
)

// Service defines the interface for sending emails, allowing for mock implementations in tests.
type Service interface {
	SendPasswordReset(ctx context.Context, toEmail, resetURL string) error
}

// NewService returns a Resend-backed service when an API key is configured
// and a log-only service otherwise.
func NewService(cfg *config.Config) Service {
	if cfg.ResendAPIKey == "" {
		slog.Info("RESEND_API_KEY not set, password reset emails will only be logged")
		return LogService{}
	}
	return &ResendClient{
		client:    resend.NewClient(cfg.ResendAPIKey),
		fromEmail: cfg.EmailFrom,
		fromName:  cfg.EmailFromName,
	}
}

type ResendClient struct {
	client    *resend.Client
	fromEmail string
	fromName  string
}

func (c *ResendClient) SendPasswordReset(ctx context.Context, toEmail, resetURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{toEmail},
		Subject: "Recuperação de senha - Vital Recife Suplementos",
		Html:    passwordResetHTML(resetURL),
	}
	if _, err := c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send password reset email via Resend: %w", err)
	}
	return nil
}

// LogService only records that an email would have been sent.
type LogService struct{}

func (LogService) SendPasswordReset(ctx context.Context, toEmail, resetURL string) error {
	slog.InfoContext(ctx, "password reset email (not sent)", "to", toEmail, "reset_url", resetURL)
	return nil
}

func passwordResetHTML(resetURL string) string {
	u := html.EscapeString(resetURL)
	return `<!DOCTYPE html>
<html><head><meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:600px;margin:0 auto;padding:20px;color:#333}a.btn{display:inline-block;background:#111;color:#fff;padding:12px 20px;border-radius:6px;text-decoration:none}</style>
</head><body>
<h1>Recuperação de senha</h1>
<p>Recebemos um pedido para redefinir a senha da sua conta Vital Recife.</p>
<p><a class="btn" href="` + u + `">Redefinir senha</a></p>
<p>Se você não fez esse pedido, ignore este e-mail.</p>
</body></html>`
}
