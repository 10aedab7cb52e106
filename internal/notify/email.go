package notify

import (
	"context"
	"errors"

	"ledger-service/pkg/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// EmailNotifier sends plain text mail through an SMTP server
type EmailNotifier struct {
	from string
	dial func() (gomail.SendCloser, error)
	log  *zap.Logger
}

// NewEmailNotifier builds an SMTP notifier from configuration
func NewEmailNotifier(conf config.SMTPConfig, log *zap.Logger) *EmailNotifier {
	dialer := gomail.NewDialer(conf.Host, conf.Port, conf.Username, conf.Password)
	return &EmailNotifier{
		from: conf.From,
		dial: dialer.Dial,
		log:  log.With(zap.String("channel", string(ChannelEmail))),
	}
}

func (n *EmailNotifier) Channel() Channel { return ChannelEmail }

// Send delivers msg. An empty From falls back to the configured sender.
func (n *EmailNotifier) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return &DeliveryError{Channel: ChannelEmail, Err: errors.New("recipient has no email address")}
	}
	if err := ctx.Err(); err != nil {
		return &DeliveryError{Channel: ChannelEmail, Recipient: msg.To, Err: err}
	}

	from := msg.From
	if from == "" {
		from = n.from
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	sender, err := n.dial()
	if err != nil {
		n.log.Error("Failed to connect to SMTP server", zap.Error(err))
		return &DeliveryError{Channel: ChannelEmail, Recipient: msg.To, Err: err}
	}
	defer sender.Close()

	if err := sender.Send(from, []string{msg.To}, m); err != nil {
		n.log.Error("Failed to send email", zap.String("to", msg.To), zap.Error(err))
		return &DeliveryError{Channel: ChannelEmail, Recipient: msg.To, Err: err}
	}

	n.log.Info("Email sent", zap.String("to", msg.To))
	return nil
}
