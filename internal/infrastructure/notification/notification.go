package notification

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"augeo-server/services/admin-api/internal/config"
	"augeo-server/services/admin-api/internal/infrastructure/metrics"
)

// ErrDeliveryFailed is returned when every retry attempt has been exhausted.
// Callers that run after a committed state change must log it and move on;
// notification failure never rolls back a business transaction.
var ErrDeliveryFailed = errors.New("notification delivery failed")

// Email is one outbound transactional message.
type Email struct {
	To      string
	Subject string
	Body    string
	Kind    string
}

// Sender delivers a single email attempt.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// Mailer sends mail over SMTP. Without SMTP_HOST configured it runs in mock
// mode and logs the message instead, which keeps development environments
// working.
type Mailer struct {
	addr     string
	host     string
	username string
	password string
	from     string
	log      zerolog.Logger
	enabled  bool
}

func NewMailer(cfg *config.Config, log zerolog.Logger) *Mailer {
	logger := log.With().Str("component", "mailer").Logger()
	m := &Mailer{
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		host:     cfg.SMTPHost,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		log:      logger,
		enabled:  strings.TrimSpace(cfg.SMTPHost) != "",
	}
	if !m.enabled {
		logger.Warn().Msg("SMTP_HOST is not set; emails will be logged instead of sent")
	}
	return m
}

func (m *Mailer) Send(_ context.Context, email Email) error {
	if !m.enabled {
		m.log.Info().
			Str("kind", email.Kind).
			Str("to", email.To).
			Str("subject", email.Subject).
			Msg("mock email")
		return nil
	}

	message := fmt.Appendf(nil, "From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", m.from, email.To, email.Subject, email.Body)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	return smtp.SendMail(m.addr, auth, m.from, []string{email.To}, message)
}

// Dispatcher wraps a Sender with bounded exponential-backoff retries.
// It is constructed explicitly and injected; there is no global instance.
type Dispatcher struct {
	sender Sender
	cfg    *config.Config
	log    zerolog.Logger
}

func NewDispatcher(cfg *config.Config, sender Sender, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		cfg:    cfg,
		log:    log.With().Str("component", "notification-dispatcher").Logger(),
	}
}

// Notify delivers the email, retrying up to the configured attempt count
// with delays starting at the base delay and doubling each attempt.
func (d *Dispatcher) Notify(ctx context.Context, email Email) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = d.cfg.RetryBaseDelay
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxElapsedTime = 0

	attempt := 0
	operation := func() error {
		attempt++
		if err := d.sender.Send(ctx, email); err != nil {
			d.log.Warn().
				Err(err).
				Str("kind", email.Kind).
				Str("to", email.To).
				Int("attempt", attempt).
				Msg("email delivery attempt failed")
			return err
		}
		return nil
	}

	retries := d.cfg.RetryMaxAttempts
	if retries > 0 {
		retries--
	}
	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(retries)), ctx))
	if err != nil {
		metrics.RecordEmailFailure(email.Kind)
		d.log.Error().
			Err(err).
			Str("kind", email.Kind).
			Str("to", email.To).
			Uint("max_attempts", d.cfg.RetryMaxAttempts).
			Msg("email delivery failed after all retries")
		return fmt.Errorf("%w: %s to %s: %v", ErrDeliveryFailed, email.Kind, email.To, err)
	}
	return nil
}
