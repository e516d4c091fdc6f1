// Package llm sends prompts to an OpenAI-compatible chat completion endpoint.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/festy23/evidence_bot/internal/config"
)

var (
	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("LLM API key is not configured")
	// ErrEmptyCompletion is returned when the endpoint answers without choices.
	ErrEmptyCompletion = errors.New("LLM returned no choices")
)

// Completer turns a prompt into a model reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client implements Completer using go-openai.
type Client struct {
	api    *openai.Client
	cfg    config.LLMConfig
	logger *zap.SugaredLogger
}

var _ Completer = (*Client)(nil)

// New creates a client. A missing API key is not an error here; Complete reports it.
func New(cfg config.LLMConfig, logger *zap.SugaredLogger) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api:    openai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
		logger: logger,
	}
}

// Complete sends prompt as a single user message.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	c.logger.Debugw("Complete called", "model", c.cfg.Model, "prompt_len", len(prompt))

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: float32(c.cfg.Temperature),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	reply := resp.Choices[0].Message.Content
	c.logger.Infow("Complete completed", "model", c.cfg.Model, "reply_len", len(reply))
	return reply, nil
}
