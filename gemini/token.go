package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/pagesmith"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ pagesmith.TokenCounter = (*TokenCounter)(nil)

// TokenCounter sizes prompts offline with the model's own vocabulary. It
// backs WithTokenLimit, so an oversized request fails before any network
// traffic.
type TokenCounter struct {
	model string
	local *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer for model. Only models known to the
// local tokenizer are accepted.
func NewTokenCounter(model string) (*TokenCounter, error) {
	local, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, pagesmith.Errorf(pagesmith.EINVALID, "no local tokenizer for %q: %v", model, err)
	}
	return &TokenCounter{model: model, local: local}, nil
}

// CountTokens returns the size of text sent as a single user turn.
func (c *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	res, err := c.local.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, fmt.Errorf("counting %s tokens: %w", c.model, err)
	}
	return int(res.TotalTokens), nil
}
