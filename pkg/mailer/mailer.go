package mailer

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Mailer sends email through SMTP. It satisfies the lifecycle's mail
// gateway contract: one delivery attempt plus a single fallback through
// the plain-text path, no general retry policy.
type Mailer struct {
	config *mailerConfig
	dialer *gomail.Dialer
	logger *zerolog.Logger
}

// NewMailer creates a new Mailer instance configured from the environment
func NewMailer(logger *zerolog.Logger) *Mailer {
	cfg := newMailerConfig(logger)

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate Mailer configuration")
	}

	dialer := gomail.NewDialer(
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
	)

	return &Mailer{
		config: cfg,
		dialer: dialer,
		logger: logger,
	}
}

// Send sends a message with an HTML body and a plain-text alternative.
// When the full message fails, it falls back to a single plain-text
// attempt before reporting failure.
func (m *Mailer) Send(to, subject, htmlBody, textBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)

	if htmlBody != "" {
		msg.SetBody("text/html", htmlBody)
		if textBody != "" {
			msg.AddAlternative("text/plain", textBody)
		}
	} else {
		msg.SetBody("text/plain", textBody)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Warn().Err(err).Str("to", to).Msg("mail send failed, retrying with plain text")
		if fallbackErr := m.SendSimple(to, subject, textBody); fallbackErr != nil {
			return fmt.Errorf("send mail to %s: %w", to, err)
		}
	}
	return nil
}

// SendSimple sends a plain-text email
func (m *Mailer) SendSimple(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}

// mailerConfig holds SMTP configuration for sending emails.
type mailerConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// newMailerConfig creates a mailerConfig instance from environment variables.
func newMailerConfig(logger *zerolog.Logger) *mailerConfig {
	cfg, err := env.ParseAs[mailerConfig]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	return &cfg
}

// validate checks if the Mailer configuration is valid.
func (c *mailerConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("missing SMTP_HOST environment variable")
	}
	if c.Port == 0 {
		return fmt.Errorf("missing SMTP_PORT environment variable")
	}
	if c.Username == "" {
		return fmt.Errorf("missing SMTP_USERNAME environment variable")
	}
	if c.Password == "" {
		return fmt.Errorf("missing SMTP_PASSWORD environment variable")
	}
	if c.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}

	return nil
}
