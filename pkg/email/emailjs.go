package email

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

// EmailJSClient sends messages through the EmailJS REST API.
type EmailJSClient struct {
	serviceID  string
	templateID string
	publicKey  string
	privateKey string
	endpoint   string
	client     *http.Client
}

type EmailJSOption func(*EmailJSClient)

// WithHTTPClient replaces the default client, e.g. for tests.
func WithHTTPClient(c *http.Client) EmailJSOption {
	return func(e *EmailJSClient) {
		if c != nil {
			e.client = c
		}
	}
}

func NewEmailJSClient(cfg Config, opts ...EmailJSOption) *EmailJSClient {
	e := &EmailJSClient{
		serviceID:  strings.TrimSpace(cfg.EmailJSServiceID),
		templateID: strings.TrimSpace(cfg.EmailJSTemplateID),
		publicKey:  strings.TrimSpace(cfg.EmailJSPublicKey),
		privateKey: strings.TrimSpace(cfg.EmailJSPrivateKey),
		endpoint:   cfg.EmailJSEndpoint,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	if e.endpoint == "" {
		e.endpoint = "https://api.emailjs.com/api/v1.0/email/send"
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *EmailJSClient) Provider() string { return ProviderEmailJS }

// Configured is false when any of the three identifiers is missing or a
// placeholder.
func (e *EmailJSClient) Configured() bool {
	return allSet(e.serviceID, e.templateID, e.publicKey)
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// SendEmail posts msg once. There are no retries.
func (e *EmailJSClient) SendEmail(ctx context.Context, msg Message) error {
	if !e.Configured() {
		return ErrNotConfigured
	}
	if err := msg.Validate(); err != nil {
		return err
	}

	params := make(map[string]string, len(msg.Params)+5)
	for k, v := range msg.Params {
		params[k] = v
	}
	params["to_email"] = msg.To
	params["reply_to"] = msg.ReplyTo
	params["from_name"] = msg.FromName
	params["subject"] = msg.Subject
	params["message_html"] = msg.HTMLBody

	payload, err := json.Marshal(emailJSRequest{
		ServiceID:      e.serviceID,
		TemplateID:     e.templateID,
		UserID:         e.publicKey,
		AccessToken:    e.privateKey,
		TemplateParams: params,
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		detail := strings.ReplaceAll(strings.TrimSpace(string(body)), "\n", " ")
		if len(detail) > 200 {
			detail = detail[:200] + "..."
		}
		return errors.Join(
			ErrFailedToSendEmail,
			fmt.Errorf("emailjs returned status %d: %s", resp.StatusCode, detail),
		)
	}
	return nil
}
