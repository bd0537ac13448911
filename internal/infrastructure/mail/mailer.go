// Package mail delivers transactional account emails over SMTP.
package mail

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/courtside/nba-stats-api/internal/platform/logging"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	// BaseURL is the public address links in emails point at.
	BaseURL string
}

// Mailer sends the account lifecycle emails. Dialing happens per message;
// SMTP sessions are cheap at this volume and a held connection goes stale.
type Mailer struct {
	cfg    Config
	logger *logging.Logger
	send   func(m *gomail.Message) error
}

func NewMailer(cfg Config, logger *logging.Logger) *Mailer {
	if logger == nil {
		logger = logging.Default()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	return &Mailer{
		cfg:    cfg,
		logger: logger,
		send: func(m *gomail.Message) error {
			return dialer.DialAndSend(m)
		},
	}
}

var verificationBody = template.Must(template.New("verification").Parse(`
<p>Hi {{.Name}},</p>
<p>Welcome! Confirm your email address to activate your account:</p>
<p><a href="{{.Link}}">Verify my email</a></p>
<p>The link expires in 24 hours. If you did not create this account, ignore this message.</p>
`))

var resetBody = template.Must(template.New("reset").Parse(`
<p>Hi {{.Name}},</p>
<p>We received a request to reset your password:</p>
<p><a href="{{.Link}}">Choose a new password</a></p>
<p>The link expires in 3 hours. If you did not request this, your password is still safe.</p>
`))

func (m *Mailer) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	link := fmt.Sprintf("%s/api/v1/verify/%s", m.cfg.BaseURL, token)
	return m.deliver(ctx, to, "Confirm your email address", verificationBody, name, link)
}

func (m *Mailer) SendPasswordResetEmail(ctx context.Context, to, name, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.cfg.BaseURL, token)
	return m.deliver(ctx, to, "Reset your password", resetBody, name, link)
}

func (m *Mailer) deliver(ctx context.Context, to, subject string, body *template.Template, name, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var html strings.Builder
	if err := body.Execute(&html, struct{ Name, Link string }{Name: name, Link: link}); err != nil {
		return fmt.Errorf("render email body: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html.String())

	if err := m.send(msg); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	m.logger.InfoContext(ctx, "email sent", "subject", subject)
	return nil
}
