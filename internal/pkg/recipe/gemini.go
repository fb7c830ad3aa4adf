package recipe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/brewlogic/BrewLogic/internal/pkg/env"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Config holds completion service settings.
type Config struct {
	APIKey        string
	Model         string
	BaseURL       string
	Temperature   float32
	Timeout       time.Duration
	DefaultLocale string
}

// LoadConfig reads the completion settings from the environment. An empty
// GEMINI_BASE_URL keeps the SDK default endpoint.
func LoadConfig() *Config {
	return &Config{
		APIKey:        strings.TrimSpace(env.GetEnv("GEMINI_API_KEY", "")),
		Model:         strings.TrimSpace(env.GetEnv("GEMINI_MODEL", defaultGeminiModel)),
		BaseURL:       strings.TrimSpace(env.GetEnv("GEMINI_BASE_URL", "")),
		Temperature:   0.7,
		Timeout:       env.GetEnvDuration("AI_TIMEOUT", 60*time.Second),
		DefaultLocale: strings.TrimSpace(env.GetEnv("RECIPE_LOCALE", "id")),
	}
}

// IsConfigured reports whether an API key is present.
func (c *Config) IsConfigured() bool {
	return c.APIKey != ""
}

// GeminiClient asks the Gemini API for a JSON completion constrained by a
// response schema. The SDK client is created on first use.
type GeminiClient struct {
	cfg        *Config
	httpClient *http.Client

	once    sync.Once
	client  *genai.Client
	initErr error
}

func NewGeminiClient(cfg *Config) *GeminiClient {
	return &GeminiClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *GeminiClient) sdk(ctx context.Context) (*genai.Client, error) {
	c.once.Do(func() {
		cc := &genai.ClientConfig{
			APIKey:     c.cfg.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: c.httpClient,
		}
		if c.cfg.BaseURL != "" {
			cc.HTTPOptions.BaseURL = strings.TrimRight(c.cfg.BaseURL, "/") + "/"
		}
		c.client, c.initErr = genai.NewClient(ctx, cc)
	})
	return c.client, c.initErr
}

// Complete sends prompt and returns the raw JSON text of the first candidate.
func (c *GeminiClient) Complete(ctx context.Context, prompt string, schema *genai.Schema) ([]byte, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	client, err := c.sdk(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}

	resp, err := client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(c.cfg.Temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, &TransportError{StatusCode: apiErr.Code, Err: err}
		}
		return nil, &TransportError{Err: err}
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, violation("prompt blocked: "+string(resp.PromptFeedback.BlockReason), nil)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, violation("empty completion", nil)
	}
	return []byte(text), nil
}
