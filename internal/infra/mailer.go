package infra

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending alert digests.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendAlertDigest mails the current alert lines to the configured recipient.
// Called synchronously from the notify endpoint; there are no background
// senders in this system.
func (m *Mailer) SendAlertDigest(to string, lines []string) error {
	if to == "" {
		return fmt.Errorf("mailer: no recipient configured")
	}

	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Reagent inventory alerts (%d)", len(lines))

	body := "The following reagents need attention:\n\n"
	if len(lines) == 0 {
		body = "No low-stock or expiration alerts at this time.\n"
	} else {
		body += "- " + strings.Join(lines, "\n- ") + "\n"
	}
	e.Text = []byte(body)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
