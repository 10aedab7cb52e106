package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ledger-service/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWhatsAppNotifierSend(t *testing.T) {
	var got whatsAppRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v16.0/12345/messages", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer server.Close()

	n := NewWhatsAppNotifier(config.WhatsAppConfig{
		BaseURL:       server.URL + "/",
		APIVersion:    "v16.0",
		PhoneNumberID: "12345",
		AccessToken:   "token",
		Timeout:       time.Second,
	}, zap.NewNop())

	err := n.Send(context.Background(), Message{From: "+1000", To: "+2000", Body: "Pay up"})
	require.NoError(t, err)

	assert.Equal(t, "whatsapp", got.MessagingProduct)
	assert.Equal(t, "+2000", got.To)
	assert.Equal(t, "text", got.Type)
	assert.Equal(t, "Pay up", got.Text.Body)
}

func TestWhatsAppNotifierErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid parameter","type":"OAuthException","code":100}}`))
	}))
	defer server.Close()

	n := NewWhatsAppNotifier(config.WhatsAppConfig{
		BaseURL:       server.URL,
		APIVersion:    "v16.0",
		PhoneNumberID: "1",
		Timeout:       time.Second,
	}, zap.NewNop())

	err := n.Send(context.Background(), Message{To: "+2000", Body: "x"})
	var derr *DeliveryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, ChannelWhatsApp, derr.Channel)
	assert.Contains(t, err.Error(), "Invalid parameter")

	err = n.Send(context.Background(), Message{Body: "x"})
	assert.ErrorAs(t, err, &derr)
}
