// Package openai provides a pagesmith.Generator backed by any OpenAI
// compatible chat completions endpoint.
package openai

import (
	"context"
	"errors"
	"net"

	"github.com/fwojciec/pagesmith"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = openai.GPT4oMini

// DefaultMaxTokens bounds the completion length.
const DefaultMaxTokens = 16000

var _ pagesmith.Generator = (*Generator)(nil)

// Generator implements pagesmith.Generator using a chat completion.
type Generator struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel sets the chat model.
func WithModel(model string) Option {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithMaxTokens sets the completion token limit.
func WithMaxTokens(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxTokens = n
		}
	}
}

// NewGenerator creates a Generator for apiKey. A non-empty baseURL points
// the client at a compatible endpoint instead of api.openai.com.
func NewGenerator(apiKey, baseURL string, opts ...Option) *Generator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	g := &Generator{
		client:    openai.NewClientWithConfig(cfg),
		model:     DefaultModel,
		maxTokens: DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns the assistant's reply to the requirements.
func (g *Generator) Generate(ctx context.Context, req pagesmith.GenerateRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: pagesmith.GenerationInstructions},
			{Role: openai.ChatMessageRoleUser, Content: req.Requirements},
		},
		MaxTokens:   g.maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", classify(ctx, err)
	}
	if len(resp.Choices) == 0 {
		return "", pagesmith.Errorf(pagesmith.EUPSTREAM, "openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func classify(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return pagesmith.Errorf(pagesmith.EUPSTREAM, "openai: HTTP %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return pagesmith.Errorf(pagesmith.EUPSTREAM, "openai: HTTP %d", reqErr.HTTPStatusCode)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return pagesmith.Errorf(pagesmith.EUNAVAILABLE, "openai unreachable: %v", err)
	}
	return pagesmith.Errorf(pagesmith.EUPSTREAM, "openai: %v", err)
}
