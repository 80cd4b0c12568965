package emailgateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/delizza/mailing-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendGridSend(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer sg-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	gateway := &SendGridGateway{
		BaseURL:    server.URL,
		APIKey:     "sg-key",
		FromEmail:  "hello@delizza.fr",
		FromName:   "Deli'Zza",
		httpClient: server.Client(),
	}

	err := gateway.Send(context.Background(), "leo@example.com", "Promo", "<p>Hi</p>")

	require.NoError(t, err)
	assert.Equal(t, "Promo", captured["subject"])
	from := captured["from"].(map[string]interface{})
	assert.Equal(t, "hello@delizza.fr", from["email"])
	personalizations := captured["personalizations"].([]interface{})
	require.Len(t, personalizations, 1)
}

func TestSendGridSendVendorError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"message":"bad from address"}]}`))
	}))
	defer server.Close()

	gateway := &SendGridGateway{
		BaseURL:    server.URL,
		APIKey:     "sg-key",
		httpClient: server.Client(),
	}

	err := gateway.Send(context.Background(), "leo@example.com", "Promo", "<p>Hi</p>")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "bad from address")
}

func TestSendGridMissingKey(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	gateway := &SendGridGateway{
		BaseURL:    server.URL,
		httpClient: server.Client(),
	}

	err := gateway.Send(context.Background(), "leo@example.com", "Promo", "<p>Hi</p>")

	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, 0, hits)
}

func TestBrevoSend(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/smtp/email", r.URL.Path)
		assert.Equal(t, "brevo-key", r.Header.Get("api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	gateway := &BrevoGateway{
		BaseURL:    server.URL,
		APIKey:     "brevo-key",
		FromEmail:  "hello@delizza.fr",
		FromName:   "Deli'Zza",
		httpClient: server.Client(),
	}

	err := gateway.Send(context.Background(), "leo@example.com", "Promo", "<p>Hi</p>")

	require.NoError(t, err)
	assert.Equal(t, "<p>Hi</p>", captured["htmlContent"])
	sender := captured["sender"].(map[string]interface{})
	assert.Equal(t, "Deli'Zza", sender["name"])
}

func TestBrevoMissingKey(t *testing.T) {
	gateway := &BrevoGateway{BaseURL: "http://unused.invalid", httpClient: http.DefaultClient}

	err := gateway.Send(context.Background(), "leo@example.com", "Promo", "<p>Hi</p>")

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestMockGatewayAcceptsEverything(t *testing.T) {
	gateway := NewMockGateway("sendgrid")

	assert.NoError(t, gateway.Send(context.Background(), "anyone@example.com", "s", "b"))
	assert.Equal(t, "MOCK", gateway.Name())
}

func TestNewSelectsProvider(t *testing.T) {
	cfg := &config.Config{}
	cfg.Email.Provider = "brevo"
	assert.IsType(t, &BrevoGateway{}, New(cfg))

	cfg.Email.Provider = "sendgrid"
	assert.IsType(t, &SendGridGateway{}, New(cfg))

	cfg.Email.MockGateway = true
	assert.IsType(t, &MockGateway{}, New(cfg))
}
