// Package mailer abstracts the outbound transactional-email provider.
package mailer

import "context"

// Message is one outbound email. From is the campaign's fixed sender
// identity; ReplyTo carries the constituent's own address so a lawmaker's
// office replies to them, not to us.
type Message struct {
	From     string
	To       string
	ReplyTo  string
	Subject  string
	TextBody string
}

// Mailer sends a single email and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (messageID string, err error)
}
