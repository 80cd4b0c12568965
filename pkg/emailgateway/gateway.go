package emailgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/delizza/mailing-backend/internal/config"
)

// ErrNotConfigured is returned when the selected gateway has no API key.
// It is raised before any network call and is terminal for a whole send,
// unlike an ordinary per-recipient delivery error.
var ErrNotConfigured = errors.New("email gateway is not configured")

// Gateway represents an email delivery gateway. Implementations translate
// the vendor response into a plain error; retry policy is the caller's
// business, not the gateway's.
type Gateway interface {
	Name() string
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SendGridGateway delivers through the SendGrid v3 mail send API
type SendGridGateway struct {
	BaseURL    string
	APIKey     string
	FromEmail  string
	FromName   string
	httpClient *http.Client
}

// BrevoGateway delivers through the Brevo (ex Sendinblue) transactional API
type BrevoGateway struct {
	BaseURL    string
	APIKey     string
	FromEmail  string
	FromName   string
	httpClient *http.Client
}

// MockGateway accepts every message without any network call
type MockGateway struct {
	Label string
}

// New selects the configured gateway. Selection happens once here, at
// composition time; callers hold the interface and stay vendor-agnostic.
func New(cfg *config.Config) Gateway {
	if cfg.Email.MockGateway {
		return NewMockGateway(cfg.Email.Provider)
	}
	switch cfg.Email.Provider {
	case "brevo":
		return NewBrevoGateway(cfg)
	default:
		return NewSendGridGateway(cfg)
	}
}

// NewSendGridGateway creates a new SendGrid gateway
func NewSendGridGateway(cfg *config.Config) *SendGridGateway {
	return &SendGridGateway{
		BaseURL:   cfg.Email.SendGrid.BaseURL,
		APIKey:    cfg.Email.SendGrid.APIKey,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewBrevoGateway creates a new Brevo gateway
func NewBrevoGateway(cfg *config.Config) *BrevoGateway {
	return &BrevoGateway{
		BaseURL:   cfg.Email.Brevo.BaseURL,
		APIKey:    cfg.Email.Brevo.APIKey,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewMockGateway creates a new mock gateway
func NewMockGateway(label string) *MockGateway {
	return &MockGateway{Label: label}
}

// Name returns the gateway identifier recorded on delivery records
func (g *SendGridGateway) Name() string { return "SENDGRID" }

// Send sends an email through SendGrid
func (g *SendGridGateway) Send(ctx context.Context, to, subject, htmlBody string) error {
	if g.APIKey == "" {
		return fmt.Errorf("sendgrid: %w", ErrNotConfigured)
	}

	requestBody := map[string]interface{}{
		"personalizations": []map[string]interface{}{
			{"to": []map[string]string{{"email": to}}},
		},
		"from": map[string]string{
			"email": g.FromEmail,
			"name":  g.FromName,
		},
		"subject": subject,
		"content": []map[string]string{
			{"type": "text/html", "value": htmlBody},
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/v3/mail/send", bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("sendgrid request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// Name returns the gateway identifier recorded on delivery records
func (g *BrevoGateway) Name() string { return "BREVO" }

// Send sends an email through Brevo
func (g *BrevoGateway) Send(ctx context.Context, to, subject, htmlBody string) error {
	if g.APIKey == "" {
		return fmt.Errorf("brevo: %w", ErrNotConfigured)
	}

	requestBody := map[string]interface{}{
		"sender": map[string]string{
			"email": g.FromEmail,
			"name":  g.FromName,
		},
		"to":          []map[string]string{{"email": to}},
		"subject":     subject,
		"htmlContent": htmlBody,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/v3/smtp/email", bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", g.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("brevo request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// Name returns the gateway identifier recorded on delivery records
func (g *MockGateway) Name() string { return "MOCK" }

// Send simulates a successful delivery
func (g *MockGateway) Send(ctx context.Context, to, subject, htmlBody string) error {
	return nil
}
