package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ledger-service/pkg/config"

	"go.uber.org/zap"
)

// WhatsAppNotifier sends text messages through the WhatsApp Cloud API
type WhatsAppNotifier struct {
	endpoint      string
	accessToken   string
	defaultSender string
	httpClient    *http.Client
	log           *zap.Logger
}

type whatsAppText struct {
	Body string `json:"body"`
}

type whatsAppRequest struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

// whatsAppErrorResponse is the Graph API error envelope
type whatsAppErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// NewWhatsAppNotifier builds a notifier posting to {base}/{version}/{phone_number_id}/messages
func NewWhatsAppNotifier(conf config.WhatsAppConfig, log *zap.Logger) *WhatsAppNotifier {
	base := strings.TrimRight(conf.BaseURL, "/")
	return &WhatsAppNotifier{
		endpoint:      fmt.Sprintf("%s/%s/%s/messages", base, conf.APIVersion, conf.PhoneNumberID),
		accessToken:   conf.AccessToken,
		defaultSender: conf.DefaultSender,
		httpClient:    &http.Client{Timeout: conf.Timeout},
		log:           log.With(zap.String("channel", string(ChannelWhatsApp))),
	}
}

func (n *WhatsAppNotifier) Channel() Channel { return ChannelWhatsApp }

// Send posts msg.Body as a text message to msg.To. The Cloud API sends from the
// configured phone number id; From is only logged.
func (n *WhatsAppNotifier) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return &DeliveryError{Channel: ChannelWhatsApp, Err: errors.New("recipient has no phone number")}
	}
	from := msg.From
	if from == "" {
		from = n.defaultSender
	}

	payload, err := json.Marshal(whatsAppRequest{
		MessagingProduct: "whatsapp",
		To:               msg.To,
		Type:             "text",
		Text:             whatsAppText{Body: msg.Body},
	})
	if err != nil {
		return &DeliveryError{Channel: ChannelWhatsApp, Recipient: msg.To, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(payload))
	if err != nil {
		return &DeliveryError{Channel: ChannelWhatsApp, Recipient: msg.To, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+n.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.log.Error("WhatsApp request failed", zap.String("to", msg.To), zap.Error(err))
		return &DeliveryError{Channel: ChannelWhatsApp, Recipient: msg.To, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &DeliveryError{Channel: ChannelWhatsApp, Recipient: msg.To, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp whatsAppErrorResponse
		if jsonErr := json.Unmarshal(body, &errorResp); jsonErr == nil && errorResp.Error.Message != "" {
			err = fmt.Errorf("status %d: %s", resp.StatusCode, errorResp.Error.Message)
		} else {
			err = fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
		}
		n.log.Error("Failed to send WhatsApp message",
			zap.String("from", from),
			zap.String("to", msg.To),
			zap.Int("status_code", resp.StatusCode),
			zap.Error(err))
		return &DeliveryError{Channel: ChannelWhatsApp, Recipient: msg.To, Err: err}
	}

	n.log.Info("WhatsApp message sent", zap.String("from", from), zap.String("to", msg.To))
	return nil
}
