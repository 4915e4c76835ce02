package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBrevoEndpoint = "https://api.brevo.com/v3/smtp/email"

type BrevoClient struct {
	apiKey      string
	senderEmail string
	senderName  string
	sandbox     bool
	endpoint    string
	httpClient  *http.Client
}

// NewBrevoClient returns nil when the API key or sender is missing, which
// disables mail delivery.
func NewBrevoClient(apiKey, senderEmail, senderName string, sandbox bool) *BrevoClient {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(senderEmail) == "" {
		return nil
	}
	if strings.TrimSpace(senderName) == "" {
		senderName = senderEmail
	}
	return &BrevoClient{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
		sandbox:     sandbox,
		endpoint:    defaultBrevoEndpoint,
		httpClient:  &http.Client{Timeout: 8 * time.Second},
	}
}

// WithEndpoint points the client at another API base, e.g. a test server.
func (c *BrevoClient) WithEndpoint(endpoint string) *BrevoClient {
	if c != nil {
		c.endpoint = endpoint
	}
	return c
}

// mail is one transactional message addressed to a single recipient.
type mail struct {
	to      brevoRecipient
	replyTo string
	subject string
	html    string
}

func (m mail) check() error {
	switch {
	case strings.TrimSpace(m.to.Email) == "":
		return errors.New("missing recipient email")
	case strings.TrimSpace(m.subject) == "":
		return errors.New("missing subject")
	case strings.TrimSpace(m.html) == "":
		return errors.New("missing html body")
	}
	return nil
}

func (c *BrevoClient) request(m mail) brevoSendRequest {
	req := brevoSendRequest{
		Sender:      brevoSender{Name: c.senderName, Email: c.senderEmail},
		To:          []brevoRecipient{m.to},
		Subject:     m.subject,
		HtmlContent: m.html,
	}
	if r := strings.TrimSpace(m.replyTo); r != "" {
		req.ReplyTo = &brevoRecipient{Email: r}
	}
	if c.sandbox {
		// Brevo validates sandbox sends without delivering them.
		req.Headers = map[string]string{"X-Sib-Sandbox": "drop"}
	}
	return req
}

// send posts m to the Brevo API and returns the message id it assigned.
func (c *BrevoClient) send(ctx context.Context, m mail) (string, error) {
	if c == nil {
		return "", errors.New("brevo client is nil")
	}
	if err := m.check(); err != nil {
		return "", err
	}

	body, err := json.Marshal(c.request(m))
	if err != nil {
		return "", fmt.Errorf("brevo encode: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("brevo request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("brevo send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("brevo send: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var out brevoSendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("brevo response: %w", err)
	}
	if out.MessageID == "" {
		return "", errors.New("brevo response missing messageId")
	}
	return out.MessageID, nil
}

type brevoSendRequest struct {
	Sender      brevoSender       `json:"sender"`
	To          []brevoRecipient  `json:"to"`
	Subject     string            `json:"subject"`
	HtmlContent string            `json:"htmlContent,omitempty"`
	ReplyTo     *brevoRecipient   `json:"replyTo,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
}

type brevoSender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type brevoRecipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoSendResponse struct {
	MessageID string `json:"messageId"`
}
