package email

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers notifications through the Resend API. One call per
// message; the batch never groups recipients, so an address never sees
// another employee's balance.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender for the given API key and From header.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send hands msg to Resend. Category becomes a Resend tag so grant emails
// can be filtered in the provider dashboard.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("resend: %w", ErrNoRecipient)
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
		Html:    msg.HTML,
	}
	if msg.Category != "" {
		params.Tags = []resend.Tag{{Name: "category", Value: msg.Category}}
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend: send to %s: %w", msg.To, err)
	}
	log.Printf("[Email] Resend accepted %s (id %s)", msg.To, sent.Id)
	return nil
}
