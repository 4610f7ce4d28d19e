package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/pagesmith"
	pshttp "github.com/fwojciec/pagesmith/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("posts requirements and returns the raw body", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/generate", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`data:{"status":"completed","result":{"code":"<html></html>"}}`))
		}))
		defer server.Close()

		g := pshttp.NewGenerator(server.URL + "/")
		resp, err := g.Generate(context.Background(), pagesmith.GenerateRequest{Requirements: "a bakery"})

		require.NoError(t, err)
		assert.Equal(t, `data:{"status":"completed","result":{"code":"<html></html>"}}`, resp)
		assert.Equal(t, "a bakery", got["requirements"])
		assert.InDelta(t, 10, got["max_iterations"], 0)
	})

	t.Run("reports non-success statuses as upstream errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model overloaded", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		g := pshttp.NewGenerator(server.URL)
		_, err := g.Generate(context.Background(), pagesmith.GenerateRequest{Requirements: "x"})

		require.Error(t, err)
		assert.Equal(t, pagesmith.EUPSTREAM, pagesmith.ErrorCode(err))
		assert.Contains(t, pagesmith.ErrorMessage(err), "HTTP 503")
		assert.Contains(t, pagesmith.ErrorMessage(err), "model overloaded")
	})

	t.Run("reports connection failures as unavailable", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		g := pshttp.NewGenerator(url)
		_, err := g.Generate(context.Background(), pagesmith.GenerateRequest{Requirements: "x"})

		require.Error(t, err)
		assert.Equal(t, pagesmith.EUNAVAILABLE, pagesmith.ErrorCode(err))
	})

	t.Run("validates the request before sending", func(t *testing.T) {
		t.Parallel()

		g := pshttp.NewGenerator("http://127.0.0.1:0")
		_, err := g.Generate(context.Background(), pagesmith.GenerateRequest{})

		assert.Equal(t, pagesmith.EINVALID, pagesmith.ErrorCode(err))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		g := pshttp.NewGenerator(server.URL, pshttp.WithTimeout(10*time.Millisecond))
		_, err := g.Generate(context.Background(), pagesmith.GenerateRequest{Requirements: "x"})

		assert.Equal(t, pagesmith.EUNAVAILABLE, pagesmith.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		g := pshttp.NewGenerator(server.URL)
		_, err := g.Generate(ctx, pagesmith.GenerateRequest{Requirements: "x"})

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("rate limits consecutive requests", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		g := pshttp.NewGenerator(server.URL, pshttp.WithRateLimit(10))
		begin := time.Now()
		for range 3 {
			_, err := g.Generate(context.Background(), pagesmith.GenerateRequest{Requirements: "x"})
			require.NoError(t, err)
		}

		assert.GreaterOrEqual(t, time.Since(begin), 150*time.Millisecond)
	})
}
