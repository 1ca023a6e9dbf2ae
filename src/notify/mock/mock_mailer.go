package notifymock

import (
	"context"
	"sync"

	"portfolio/src/notify"

	"github.com/stretchr/testify/mock"
)

// Mailer is a testify mock of notify.Mailer.
type Mailer struct {
	mock.Mock
}

func (m *Mailer) Send(ctx context.Context, msg notify.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// Recorder keeps every message it is asked to send. Sends whose category
// has an entry in Fail return that error instead.
type Recorder struct {
	mu   sync.Mutex
	sent []notify.Message
	Fail map[string]error
}

func NewRecorder() *Recorder {
	return &Recorder{Fail: map[string]error{}}
}

func (r *Recorder) Send(_ context.Context, msg notify.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return r.Fail[msg.Category]
}

func (r *Recorder) Sent() []notify.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Message(nil), r.sent...)
}

// ByCategory returns the first recorded message of the given category.
func (r *Recorder) ByCategory(category string) (notify.Message, bool) {
	for _, msg := range r.Sent() {
		if msg.Category == category {
			return msg, true
		}
	}
	return notify.Message{}, false
}
