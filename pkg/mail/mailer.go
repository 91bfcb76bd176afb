package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Config carries the SMTP account and the fixed recipient.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	To       string
}

// Mailer sends rendered digests over SMTP. One message per call, no
// retries: a failed send is the caller's to log and move past.
type Mailer struct {
	config Config
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{config: cfg}
}

func (m *Mailer) Send(subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.config.From, m.config.FromName)
	msg.SetHeader("To", m.config.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.config.Host, m.config.Port, m.config.Username, m.config.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send digest mail: %w", err)
	}

	return nil
}
