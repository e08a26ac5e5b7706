// Package email provides email sending functionality with pluggable providers.
package email

import (
	"context"
	"errors"
)

// ErrNoRecipient is returned when a message has no To address.
var ErrNoRecipient = errors.New("email: no recipient")

// Message represents an email message to be sent.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string // optional

	// Category groups messages at the provider (a Resend tag). Optional.
	Category string
}

// Sender is the interface for email providers.
// Callers treat a nil error as "handed off"; there are no delivery receipts.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New returns a ResendSender when apiKey is set and a LogSender otherwise.
func New(apiKey, from string) Sender {
	if apiKey == "" {
		return NewLogSender()
	}
	return NewResendSender(apiKey, from)
}
