package service

import (
	"fmt"

	"github.com/pixelnest/studio-server/config"
	"github.com/pixelnest/studio-server/utils"

	"gopkg.in/gomail.v2"
)

// EmailSender delivers invite mail over SMTP.
type EmailSender struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewMailerFromConfig returns an SMTP sender, or a log-only sender when
// SMTP is not configured so invite issuance keeps working in development.
func NewMailerFromConfig(cfg *config.Config) InviteMailer {
	if cfg.SMTPHost == "" {
		utils.Logger.Info().Msg("smtp absent, invite mail will only be logged")
		return &logMailer{}
	}
	return &EmailSender{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.MailFrom,
	}
}

// SendInvite emails the portal claim link.
func (s *EmailSender) SendInvite(to, name, link string) error {
	body := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Your client portal is ready. Use the link below to choose a password and sign in:</p>
<p><a href="%s">%s</a></p>
<p>The link expires, so claim it soon. Reply to this email with any questions.</p>`,
		name, link, link,
	)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your client portal invite")
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send invite mail: %w", err)
	}

	return nil
}

// logMailer stands in for SMTP in development.
type logMailer struct{}

func (l *logMailer) SendInvite(to, name, link string) error {
	utils.Logger.Info().
		Str("to", to).
		Str("name", name).
		Str("link", link).
		Msg("invite mail (smtp not configured)")
	return nil
}
