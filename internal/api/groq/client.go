package groq

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// DefaultBaseURL is Groq's OpenAI-compatible endpoint
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// DefaultModel is used when no model is configured
const DefaultModel = "llama3-8b-8192"

// ErrEmptyResponse is returned when the API answers without choices
var ErrEmptyResponse = errors.New("groq returned no choices")

// Client wraps the chat completion API
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	logger      zerolog.Logger
}

// ClientOptions holds options for creating a new Groq client
type ClientOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

// NewClient creates a new Groq client
func NewClient(opts ClientOptions) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = DefaultBaseURL
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 4000
	}

	return &Client{
		client:      openai.NewClientWithConfig(cfg),
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		logger:      log.With().Str("component", "groq_client").Logger(),
	}
}

// Complete sends a system and user message and returns the reply text
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	c.logger.Debug().Int("prompt_len", len(prompt)).Str("model", c.model).Msg("Sending prompt to Groq")

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: system,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: c.temperature,
			MaxTokens:   c.maxTokens,
		},
	)
	if err != nil {
		c.logger.Error().Err(err).Msg("Groq API error")
		return "", err
	}

	if len(resp.Choices) == 0 {
		c.logger.Warn().Msg("Groq returned empty choices")
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}
