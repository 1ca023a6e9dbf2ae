package notify

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSendClient struct {
	got      *mail.SGMailV3
	deadline bool
	resp     *rest.Response
	err      error
}

func (f *fakeSendClient) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.got = email
	_, f.deadline = ctx.Deadline()
	return f.resp, f.err
}

func TestNewSendGridMailerRequiresKey(t *testing.T) {
	_, err := NewSendGridMailer("", time.Second)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	mailer, err := NewSendGridMailer("SG.key", 0)
	require.NoError(t, err)
	assert.Equal(t, defaultSendTimeout, mailer.timeout)
}

func TestSendGridMailerSend(t *testing.T) {
	client := &fakeSendClient{resp: &rest.Response{StatusCode: http.StatusAccepted}}
	mailer := newSendGridMailer(client, time.Second)

	err := mailer.Send(context.Background(), Message{
		To:       "owner@example.com",
		From:     "site@example.com",
		FromName: "Site",
		ReplyTo:  "visitor@example.com",
		Subject:  "Hello",
		Text:     "plain",
		HTML:     "<p>html</p>",
		Category: CategoryContact,
	})
	require.NoError(t, err)
	assert.True(t, client.deadline)

	got := client.got
	require.NotNil(t, got)
	assert.Equal(t, "site@example.com", got.From.Address)
	assert.Equal(t, "Site", got.From.Name)
	assert.Equal(t, "Hello", got.Subject)
	require.Len(t, got.Personalizations, 1)
	require.Len(t, got.Personalizations[0].To, 1)
	assert.Equal(t, "owner@example.com", got.Personalizations[0].To[0].Address)
	require.NotNil(t, got.ReplyTo)
	assert.Equal(t, "visitor@example.com", got.ReplyTo.Address)
	assert.Equal(t, []string{CategoryContact}, got.Categories)
	require.Len(t, got.Content, 2)
	assert.Equal(t, "text/plain", got.Content[0].Type)
	assert.Equal(t, "plain", got.Content[0].Value)
	assert.Equal(t, "text/html", got.Content[1].Type)
	assert.Equal(t, "<p>html</p>", got.Content[1].Value)
}

func TestSendGridMailerWithoutReplyTo(t *testing.T) {
	client := &fakeSendClient{resp: &rest.Response{StatusCode: http.StatusAccepted}}

	err := newSendGridMailer(client, time.Second).Send(context.Background(), Message{To: "a@b.co", From: "c@d.co", Text: "x"})
	require.NoError(t, err)
	assert.Nil(t, client.got.ReplyTo)
	assert.Empty(t, client.got.Categories)
}

func TestSendGridMailerFailures(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeSendClient
		detail string
	}{
		{
			name:   "transport error",
			client: &fakeSendClient{err: errors.New("dial tcp: timeout")},
			detail: "dial tcp: timeout",
		},
		{
			name:   "rejected by provider",
			client: &fakeSendClient{resp: &rest.Response{StatusCode: http.StatusUnauthorized, Body: `{"errors":[{"message":"bad key"}]}`}},
			detail: "status 401",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newSendGridMailer(tt.client, time.Second).Send(context.Background(), Message{To: "a@b.co", From: "c@d.co", Text: "x"})
			assert.ErrorIs(t, err, ErrProvider)
			assert.ErrorContains(t, err, tt.detail)
		})
	}
}
