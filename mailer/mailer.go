// Package mailer delivers account emails.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

func VerificationEmail(to, code string) Message {
	return Message{To: to, Subject: "Verify your email", Body: "Your verification code is " + code}
}

func WelcomeEmail(to, name string) Message {
	return Message{To: to, Subject: "Welcome to Food Delivery", Body: "Welcome, " + name + "! Your email is verified."}
}

func PasswordResetEmail(to, resetURL string) Message {
	return Message{To: to, Subject: "Reset your password", Body: "Reset your password here: " + resetURL}
}

func ResetSuccessEmail(to string) Message {
	return Message{To: to, Subject: "Password reset successfully", Body: "Your password has been reset."}
}

type SendGridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewSendGridMailer(apiKey, fromAddress, fromName string) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromAddress),
	}
}

func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	email := mail.NewSingleEmail(m.from, msg.Subject, mail.NewEmail("", msg.To), msg.Body, "")
	resp, err := m.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("send %q: %w", msg.Subject, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("send %q: sendgrid status %d: %s", msg.Subject, resp.StatusCode, resp.Body)
	}
	return nil
}

// LogMailer writes emails to the log instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "email not sent, no provider configured", "to", msg.To, "subject", msg.Subject)
	return nil
}
