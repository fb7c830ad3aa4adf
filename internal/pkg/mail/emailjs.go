// Package mail delivers transactional email through the EmailJS REST API.
package mail

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

	"github.com/brewlogic/BrewLogic/internal/pkg/env"
)

const defaultEmailJSURL = "https://api.emailjs.com/api/v1.0/email/send"

// Message is one templated email.
type Message struct {
	ToName     string
	ToEmail    string
	Subject    string
	Body       string
	ActionURL  string
	ActionText string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type Config struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	URL        string
}

// LoadConfig loads EmailJS configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServiceID:  env.GetEnv("EMAILJS_SERVICE_ID", ""),
		TemplateID: env.GetEnv("EMAILJS_TEMPLATE_ID", ""),
		PublicKey:  env.GetEnv("EMAILJS_PUBLIC_KEY", ""),
		PrivateKey: env.GetEnv("EMAILJS_PRIVATE_KEY", ""),
		URL:        env.GetEnv("EMAILJS_URL", defaultEmailJSURL),
	}
	if cfg.ServiceID == "" || cfg.TemplateID == "" || cfg.PublicKey == "" {
		return nil, errors.New("EMAILJS_SERVICE_ID, EMAILJS_TEMPLATE_ID and EMAILJS_PUBLIC_KEY are required")
	}
	return cfg, nil
}

// EmailJS sends through the EmailJS REST endpoint. The private key is
// required for server-side calls in strict mode.
type EmailJS struct {
	cfg        Config
	httpClient *http.Client
}

func NewEmailJS(cfg *Config) *EmailJS {
	return &EmailJS{cfg: *cfg, httpClient: &http.Client{Timeout: 15 * time.Second}}
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (e *EmailJS) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.ToEmail) == "" {
		return errors.New("recipient email is required")
	}
	toName := msg.ToName
	if toName == "" {
		toName = "User"
	}

	payload, err := json.Marshal(emailJSRequest{
		ServiceID:   e.cfg.ServiceID,
		TemplateID:  e.cfg.TemplateID,
		UserID:      e.cfg.PublicKey,
		AccessToken: e.cfg.PrivateKey,
		TemplateParams: map[string]string{
			"to_name":     toName,
			"to_email":    msg.ToEmail,
			"subject":     msg.Subject,
			"message":     msg.Body,
			"action_url":  msg.ActionURL,
			"action_text": msg.ActionText,
		},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("emailjs send failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// ErrNotConfigured is returned by Disabled.
var ErrNotConfigured = errors.New("email delivery is not configured")

// Disabled stands in when EmailJS credentials are missing.
type Disabled struct{}

func (Disabled) Send(context.Context, Message) error {
	return ErrNotConfigured
}
