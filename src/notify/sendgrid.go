package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const defaultSendTimeout = 10 * time.Second

var emailsSent = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "portfolio_emails_sent_total",
		Help: "Emails handed to the provider by category and outcome",
	},
	[]string{"category", "status"}, // status: success|error
)

type sendClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridMailer delivers messages through the SendGrid v3 mail API.
type SendGridMailer struct {
	client  sendClient
	timeout time.Duration
}

var _ Mailer = (*SendGridMailer)(nil)

func NewSendGridMailer(apiKey string, timeout time.Duration) (*SendGridMailer, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return newSendGridMailer(sendgrid.NewSendClient(apiKey), timeout), nil
}

func newSendGridMailer(client sendClient, timeout time.Duration) *SendGridMailer {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &SendGridMailer{client: client, timeout: timeout}
}

func (s *SendGridMailer) Send(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.SendWithContext(ctx, buildSGMail(msg))
	if err == nil && resp.StatusCode >= http.StatusMultipleChoices {
		err = fmt.Errorf("status %d: %s", resp.StatusCode, resp.Body)
	}
	if err != nil {
		emailsSent.WithLabelValues(msg.Category, "error").Inc()
		return fmt.Errorf("%w: %w", ErrProvider, err)
	}

	emailsSent.WithLabelValues(msg.Category, "success").Inc()
	log.Debug().Str("category", msg.Category).Int("status", resp.StatusCode).Msg("email accepted by sendgrid")
	return nil
}

func buildSGMail(msg Message) *mail.SGMailV3 {
	from := mail.NewEmail(msg.FromName, msg.From)
	to := mail.NewEmail("", msg.To)
	m := mail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)
	if msg.ReplyTo != "" {
		m.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}
	if msg.Category != "" {
		m.AddCategories(msg.Category)
	}
	return m
}
