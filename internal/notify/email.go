package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
)

type SmtpConfig struct {
	Server       string   `json:"server"`
	Port         int      `json:"port"`
	EmailAddress string   `json:"email_address"`
	Password     string   `json:"password"`
	To           []string `json:"to"`
}

// Enabled is true when enough is configured to send mail.
func (c SmtpConfig) Enabled() bool {
	return c.Server != "" && c.EmailAddress != ""
}

// Email sends notifications over smtp.
type Email struct {
	config SmtpConfig
	// replaced in tests
	send func(mail *email.Email, addr string, auth smtp.Auth) error
}

func NewEmail(config SmtpConfig) Email {
	if config.Port == 0 {
		config.Port = 587
	}
	if len(config.To) == 0 {
		config.To = []string{config.EmailAddress}
	}
	return Email{
		config: config,
		send: func(mail *email.Email, addr string, auth smtp.Auth) error {
			return mail.Send(addr, auth)
		},
	}
}

func (e Email) message(title, body string) *email.Email {
	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Forum Checkin <%s>", e.config.EmailAddress)
	mail.To = e.config.To
	mail.Subject = title
	mail.Text = []byte(body)
	return mail
}

func (e Email) Notify(_ context.Context, title, body string) error {
	mail := e.message(title, body)
	addr := fmt.Sprintf("%s:%d", e.config.Server, e.config.Port)

	err := e.send(mail, addr, smtp.PlainAuth("", e.config.EmailAddress, e.config.Password, e.config.Server))
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = e.send(mail, addr, nil)
	}
	if err != nil {
		return fmt.Errorf("email: %w", err)
	}
	return nil
}
