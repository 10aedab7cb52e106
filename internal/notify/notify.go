// Package notify delivers payment reminders over email and WhatsApp.
package notify

import (
	"context"
	"fmt"
)

// Channel names a delivery transport
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
)

// Message is a transport independent notification. Subject is ignored by
// transports that have no notion of it.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Notifier delivers a message over one channel
type Notifier interface {
	Channel() Channel
	Send(ctx context.Context, msg Message) error
}

// DeliveryError is returned when a transport fails to hand off a message
type DeliveryError struct {
	Channel   Channel
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver %s to %q: %v", e.Channel, e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
