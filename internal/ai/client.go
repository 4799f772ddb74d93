// Package ai wraps the Anthropic SDK behind a small text-generation
// interface. The client is constructed explicitly from configuration; an
// absent credential is reported at construction time so callers can run in
// degraded mode instead of carrying a half-initialized handle.
package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/spec-kit/project-board/internal/config"
)

// ErrNoCredential indicates no API key was configured.
var ErrNoCredential = errors.New("ai: no API key configured")

// Generator produces a plain-text completion for a prompt.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client calls the Anthropic messages API.
type Client struct {
	inner     anthropic.Client
	model     anthropic.Model
	maxTokens int64
	timeout   time.Duration
}

// NewClient builds a client from config. Returns ErrNoCredential when the
// key is absent, which the caller treats as a supported configuration state.
func NewClient(cfg config.AIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoCredential
	}

	inner := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
	)

	model := anthropic.ModelClaudeSonnet4_0
	if cfg.Model != "" {
		model = anthropic.Model(cfg.Model)
	}

	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &Client{
		inner:     inner,
		model:     model,
		maxTokens: maxTokens,
		timeout:   cfg.RequestTimeout(),
	}, nil
}

// Complete sends a single user prompt and concatenates the text blocks of
// the response. Each call is bounded by the configured request timeout.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.inner.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return strings.TrimSpace(text), nil
}

// StripJSONFences removes markdown code fences models sometimes wrap around
// JSON output.
func StripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	return s
}
