//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/pagesmith"
	"github.com/fwojciec/pagesmith/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGenerator_Integration_ProducesDocument(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	g := gemini.NewGenerator(client)
	reply, err := g.Generate(ctx, pagesmith.GenerateRequest{
		Requirements: "A one-section landing page for a lemonade stand.",
	})
	require.NoError(t, err)

	res := pagesmith.ExtractHTML(reply)
	require.True(t, res.Found(), "no document in reply: %s", reply)
	assert.Contains(t, res.HTML, "<html")
}
