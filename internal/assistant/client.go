package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/finguard-dev/finguard/internal/ledger"
	"github.com/finguard-dev/finguard/internal/logger"
)

var (
	// ErrNoAPIKey is returned when no API key is configured.
	ErrNoAPIKey = errors.New("assistant API key not set")
	// ErrEmptyAnswer is returned when the endpoint replies with no content.
	ErrEmptyAnswer = errors.New("assistant returned an empty answer")
)

// Asker answers a question about the given aggregates.
type Asker interface {
	Ask(ctx context.Context, agg ledger.Aggregates, question string) (string, error)
}

// Config configures the chat client.
type Config struct {
	APIKey  string
	BaseURL string // empty uses the public OpenAI endpoint
	Model   string
	Timeout time.Duration
}

// Client calls a chat-completions endpoint.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// NewClient creates a Client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{api: openai.NewClientWithConfig(apiCfg), model: model, timeout: timeout}, nil
}

// Ask sends the aggregates and question and returns the assistant's reply.
func (c *Client) Ask(ctx context.Context, agg ledger.Aggregates, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	log := logger.Named("assistant")
	start := time.Now()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(agg, question)},
		},
		Temperature: 0.3,
	})
	if err != nil {
		log.Errorw("chat completion failed", "model", c.model, "error", err)
		return "", fmt.Errorf("asking assistant: %w", err)
	}
	log.Debugw("chat completion", "model", c.model, "duration", time.Since(start), "tokens", resp.Usage.TotalTokens)

	if len(resp.Choices) == 0 {
		return "", ErrEmptyAnswer
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", ErrEmptyAnswer
	}
	return answer, nil
}
