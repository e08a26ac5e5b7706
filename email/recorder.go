package email

import (
	"context"
	"sync"
)

// Recorder keeps every message in memory. Set Err to make every Send fail.
type Recorder struct {
	Err error

	mu   sync.Mutex
	sent []Message
}

// Send records msg, or returns r.Err without recording.
func (r *Recorder) Send(_ context.Context, msg Message) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

// Sent returns a copy of the recorded messages in send order.
func (r *Recorder) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.sent))
	copy(out, r.sent)
	return out
}

var (
	_ Sender = (*Recorder)(nil)
	_ Sender = (*LogSender)(nil)
	_ Sender = (*ResendSender)(nil)
)
