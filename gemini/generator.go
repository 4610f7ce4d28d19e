// Package gemini provides a pagesmith.Generator backed by Google Gemini.
package gemini

import (
	"context"
	"errors"
	"net"

	"github.com/fwojciec/pagesmith"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Generator implements pagesmith.Generator at compile time.
var _ pagesmith.Generator = (*Generator)(nil)

// Generator implements pagesmith.Generator using Google Gemini. The model
// is asked for a single document in one call; MaxIterations is ignored.
type Generator struct {
	client *genai.Client
	model  string

	counter   pagesmith.TokenCounter
	maxTokens int
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel sets the Gemini model.
func WithModel(model string) Option {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithTokenLimit rejects requests whose prompt is longer than maxTokens,
// as counted by counter, before calling the API.
func WithTokenLimit(counter pagesmith.TokenCounter, maxTokens int) Option {
	return func(g *Generator) {
		g.counter = counter
		g.maxTokens = maxTokens
	}
}

// NewGenerator creates a new Generator.
func NewGenerator(client *genai.Client, opts ...Option) *Generator {
	g := &Generator{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate asks the model for a document and returns its text reply.
func (g *Generator) Generate(ctx context.Context, req pagesmith.GenerateRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	if g.counter != nil && g.maxTokens > 0 {
		n, err := g.counter.CountTokens(ctx, BuildPrompt(req))
		if err != nil {
			return "", err
		}
		if n > g.maxTokens {
			return "", pagesmith.Errorf(pagesmith.EINVALID,
				"requirements too long: %d tokens (max %d)", n, g.maxTokens)
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildPrompt(req)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", classify(ctx, err)
	}
	if result == nil {
		return "", pagesmith.Errorf(pagesmith.EUPSTREAM, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.7)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: pagesmith.GenerationInstructions}},
		},
		Temperature: &temp,
	}
}

// BuildPrompt builds the user prompt for a request.
func BuildPrompt(req pagesmith.GenerateRequest) string {
	return "<requirements>\n" + req.Requirements + "\n</requirements>"
}

// classify maps a client error onto an application error code: network
// failures are EUNAVAILABLE, everything else the API reported is EUPSTREAM.
func classify(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return pagesmith.Errorf(pagesmith.EUNAVAILABLE, "gemini unreachable: %v", err)
	}
	return pagesmith.Errorf(pagesmith.EUPSTREAM, "gemini: %v", err)
}
