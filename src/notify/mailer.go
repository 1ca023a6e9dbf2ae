package notify

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrProvider wraps every failure reported by the email provider.
	ErrProvider = errors.New("email provider error")
	// ErrMissingAPIKey is returned when a provider is built without credentials.
	ErrMissingAPIKey = errors.New("email provider API key is required")
)

type (
	// Message is one transactional email.
	Message struct {
		To       string
		From     string
		FromName string
		ReplyTo  string
		Subject  string
		Text     string
		HTML     string
		// Category tags the message for provider analytics and our metrics.
		Category string
	}

	Mailer interface {
		Send(ctx context.Context, msg Message) error
	}
)

// SendAll dispatches every message concurrently and waits for all of them.
// It succeeds only when every send succeeds; there is no partial success.
func SendAll(ctx context.Context, mailer Mailer, msgs ...Message) error {
	errs := make([]error, len(msgs))
	var group errgroup.Group
	for i, msg := range msgs {
		group.Go(func() error {
			if err := mailer.Send(ctx, msg); err != nil {
				errs[i] = fmt.Errorf("send %s to %s: %w", msg.Category, msg.To, err)
			}
			return nil
		})
	}
	_ = group.Wait()
	return errors.Join(errs...)
}
