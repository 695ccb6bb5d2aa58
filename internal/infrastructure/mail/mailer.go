package mail

import (
	"github.com/email-verify-api/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends emails.
type Mailer interface {
	Send(to, subject, textBody, htmlBody string) error
}

type mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.Config) Mailer {
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	// Port 465 is implicit TLS; other ports (587) negotiate STARTTLS or stay
	// plaintext per the dialer's defaults.
	d.SSL = cfg.SMTPPort == 465
	return &mailer{dialer: d, from: cfg.SMTPFrom}
}

func (m *mailer) Send(to, subject, textBody, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}
	return m.dialer.DialAndSend(msg)
}
