// ABOUTME: Gemini client for generating leak assessments
// ABOUTME: Implements Source with a single request per reading, no retries

package assessment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/harper/aquaguard/internal/models"
	"google.golang.org/genai"
)

var (
	// ErrEmptyResponse is returned when the service answers without any text.
	ErrEmptyResponse = errors.New("empty assessment response")
	// ErrMissingAPIKey is returned by a client built without credentials.
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")
)

// Source produces raw assessment text for a reading.
type Source interface {
	Generate(ctx context.Context, r models.SensorReading) (string, error)
}

// Client implements Source using the Gemini API.
type Client struct {
	genai  *genai.Client
	model  string
	logger *slog.Logger
}

var _ Source = (*Client)(nil)

// ClientOptions configures NewClient.
type ClientOptions struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini endpoint, used by tests.
	BaseURL string
}

// NewClient creates a Gemini-backed Source. A missing API key is not an error here;
// every Generate call then fails with ErrMissingAPIKey so callers fall back.
func NewClient(ctx context.Context, opts ClientOptions, logger *slog.Logger) (*Client, error) {
	c := &Client{model: opts.Model, logger: logger}
	if opts.APIKey == "" {
		logger.Warn("gemini api key not configured, assessments will use fallback text")
		return c, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	c.genai = client
	return c, nil
}

// Generate sends one prompt built from r and returns the model's text.
func (c *Client) Generate(ctx context.Context, r models.SensorReading) (string, error) {
	if c.genai == nil {
		return "", ErrMissingAPIKey
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(BuildPrompt(r)), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	c.logger.Debug("assessment generated", "location", r.LocationName, "model", c.model, "chars", len(text))
	return text, nil
}
