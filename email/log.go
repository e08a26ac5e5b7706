package email

import (
	"context"
	"fmt"
	"log"
)

// LogSender prints each notification instead of delivering it. It backs
// `grant -dry-run` and the server when no provider key is configured, so
// an operator can read exactly what a run would send.
type LogSender struct {
	Logger *log.Logger // nil uses the standard logger
}

// NewLogSender creates a new log-based email sender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send prints the recipient, subject and plain-text body. HTML is ignored.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("log: %w", ErrNoRecipient)
	}
	logf := log.Printf
	if s.Logger != nil {
		logf = s.Logger.Printf
	}
	category := msg.Category
	if category == "" {
		category = "-"
	}
	logf("[Email] dry run (not sent) to=%s subject=%q category=%s\n%s", msg.To, msg.Subject, category, msg.Text)
	return nil
}
