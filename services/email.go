package services

import (
	"fmt"
	"log"
	"strings"

	"courtdesk/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// BuildNotificationEmail builds the email copy of an in-app notification
func BuildNotificationEmail(toEmail, title, message string) *Email {
	html := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 560px;">
  <h2 style="color: #1a2b4a;">%s</h2>
  <p>%s</p>
  <p style="color: #888; font-size: 12px;">This is an automated message from the court registry. Please sign in to the portal for details.</p>
</div>`, title, message)

	return &Email{
		To:       []string{toEmail},
		Subject:  title,
		HTMLBody: html,
		TextBody: message,
	}
}

// SendEmail sends an email using the Resend API. In test mode the email is
// logged instead of sent.
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	if _, err := client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func logEmailToConsole(email *Email) {
	log.Printf("[EMAIL] To: %s | Subject: %s | Body: %s",
		strings.Join(email.To, ", "), email.Subject, email.TextBody)
}
