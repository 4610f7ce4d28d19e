package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/pagesmith"
	"github.com/fwojciec/pagesmith/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("sends system and user messages", func(t *testing.T) {
		t.Parallel()

		var got chatRequest
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"<html><body>hi</body></html>"},"finish_reason":"stop"}]}`)
		}))
		t.Cleanup(srv.Close)

		g := openai.NewGenerator("key", srv.URL+"/v1", openai.WithModel("test-model"))
		reply, err := g.Generate(context.Background(), pagesmith.GenerateRequest{Requirements: "a cafe"})

		require.NoError(t, err)
		assert.Equal(t, "<html><body>hi</body></html>", reply)
		assert.Equal(t, "/v1/chat/completions", gotPath)
		assert.Equal(t, "test-model", got.Model)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "system", got.Messages[0].Role)
		assert.Equal(t, pagesmith.GenerationInstructions, got.Messages[0].Content)
		assert.Equal(t, "user", got.Messages[1].Role)
		assert.Equal(t, "a cafe", got.Messages[1].Content)
	})

	t.Run("empty requirements are EINVALID", func(t *testing.T) {
		t.Parallel()

		g := openai.NewGenerator("key", "http://127.0.0.1:1/v1")
		_, err := g.Generate(context.Background(), pagesmith.GenerateRequest{})

		assert.Equal(t, pagesmith.EINVALID, pagesmith.ErrorCode(err))
	})

	t.Run("no choices is EUPSTREAM", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id":"1","choices":[]}`)
		}))
		t.Cleanup(srv.Close)

		g := openai.NewGenerator("key", srv.URL+"/v1")
		_, err := g.Generate(context.Background(), pagesmith.GenerateRequest{Requirements: "x"})

		assert.Equal(t, pagesmith.EUPSTREAM, pagesmith.ErrorCode(err))
	})

	t.Run("API error is EUPSTREAM", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = io.WriteString(w, `{"error":{"message":"rate limited","type":"requests"}}`)
		}))
		t.Cleanup(srv.Close)

		g := openai.NewGenerator("key", srv.URL+"/v1")
		_, err := g.Generate(context.Background(), pagesmith.GenerateRequest{Requirements: "x"})

		require.Error(t, err)
		assert.Equal(t, pagesmith.EUPSTREAM, pagesmith.ErrorCode(err))
		assert.Contains(t, pagesmith.ErrorMessage(err), "429")
		assert.Contains(t, pagesmith.ErrorMessage(err), "rate limited")
	})

	t.Run("non-JSON error body is EUPSTREAM", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		}))
		t.Cleanup(srv.Close)

		g := openai.NewGenerator("key", srv.URL+"/v1")
		_, err := g.Generate(context.Background(), pagesmith.GenerateRequest{Requirements: "x"})

		assert.Equal(t, pagesmith.EUPSTREAM, pagesmith.ErrorCode(err))
	})

	t.Run("unreachable endpoint is EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		g := openai.NewGenerator("key", url+"/v1")
		_, err := g.Generate(context.Background(), pagesmith.GenerateRequest{Requirements: "x"})

		assert.Equal(t, pagesmith.EUNAVAILABLE, pagesmith.ErrorCode(err))
	})

	t.Run("canceled context is returned as is", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		g := openai.NewGenerator("key", "http://127.0.0.1:1/v1")
		_, err := g.Generate(ctx, pagesmith.GenerateRequest{Requirements: "x"})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
