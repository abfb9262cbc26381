// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

/*
Package mail implements the outbound email capability.

It defines the [Mailer] contract consumed by the auth flow engine and a
production implementation backed by the Resend API.

Delivery semantics:

  - Send returns the provider delivery id on success.
  - A nil error with an empty id means the provider accepted the request but
    reported no delivery; callers decide whether that is fatal.
  - The engine never retries automatically; a failed verification mail is
    logged and tolerated, a failed reset mail fails that request.
*/
package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends a single email and reports the provider delivery id.
type Mailer interface {
	Send(ctx context.Context, message Message) (deliveryID string, err error)
}

// Development-mode addresses. Resend accepts these sandbox values without a
// verified domain, so local runs never email real users.
const (
	devSender    = "onboarding@resend.dev"
	devRecipient = "delivered@resend.dev"
)

// ResendMailer implements [Mailer] using the Resend API.
type ResendMailer struct {
	client      *resend.Client
	sender      string
	development bool
}

// NewResendMailer constructs a Resend-backed mailer.
//
// In development mode the sender and recipient are redirected to the Resend
// sandbox addresses regardless of the requested values.
func NewResendMailer(apiKey, sender string, development bool) *ResendMailer {
	return &ResendMailer{
		client:      resend.NewClient(apiKey),
		sender:      sender,
		development: development,
	}
}

/*
Send dispatches one email through Resend.

Parameters:
  - ctx: context.Context
  - message: Message

Returns:
  - string: Provider delivery id ("" when the provider reported none)
  - error: Transport or API failures
*/
func (mailer *ResendMailer) Send(ctx context.Context, message Message) (string, error) {
	from := mailer.sender
	to := message.To
	if mailer.development {
		from = devSender
		to = devRecipient
	}

	sent, err := mailer.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: message.Subject,
		Text:    message.Text,
		Html:    message.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("mail: resend send failed: %w", err)
	}

	return sent.Id, nil
}
