package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

type Config struct {
	ModelName   string
	APIKey      string
	BaseURL     string
	CallTimeout time.Duration
	Logger      logr.Logger
}

// Client wraps a chat model with per-call timeouts and prompt-size logging.
type Client struct {
	llm llms.Model
	log logr.Logger
	to  time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("llm model name is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm api key is required")
	}

	opts := []openai.Option{
		openai.WithModel(cfg.ModelName),
		openai.WithToken(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}

	return &Client{llm: client, log: cfg.Logger, to: cfg.CallTimeout}, nil
}

// Complete sends an optional system prompt plus a human prompt and returns the
// first choice's text.
func (c *Client) Complete(ctx context.Context, system, human string, temperature float64) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var messages []llms.MessageContent
	if system != "" {
		messages = append(messages, llms.MessageContent{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextContent{Text: system}},
		})
	}
	messages = append(messages, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextContent{Text: human}},
	})

	c.log.V(1).Info("llm request", "prompt_tokens_estimate", EstimateTokens(system)+EstimateTokens(human))

	resp, err := c.llm.GenerateContent(ctx, messages, llms.WithTemperature(temperature))
	if err != nil {
		return "", c.annotateError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Content, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.to <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.to)
}

func (c *Client) annotateError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("llm call timed out after %s: %w", c.to, err)
	}
	return err
}
