package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/pagesmith"
	pshttp "github.com/fwojciec/pagesmith/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostClient_Host(t *testing.T) {
	t.Parallel()

	t.Run("returns the hosted URL", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/host-html", r.URL.Path)
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "<html></html>", body["htmlContent"])
			_, _ = w.Write([]byte(`{"success":true,"url":"https://abc.tunnel.example","message":"ok"}`))
		}))
		defer server.Close()

		url, err := pshttp.NewHostClient(server.URL).Host(context.Background(), "<html></html>")

		require.NoError(t, err)
		assert.Equal(t, "https://abc.tunnel.example", url)
	})

	t.Run("rejects empty documents without calling the server", func(t *testing.T) {
		t.Parallel()

		_, err := pshttp.NewHostClient("http://127.0.0.1:0").Host(context.Background(), " ")

		assert.Equal(t, pagesmith.EINVALID, pagesmith.ErrorCode(err))
	})

	t.Run("reports malformed replies as upstream errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>not json</html>`))
		}))
		defer server.Close()

		_, err := pshttp.NewHostClient(server.URL).Host(context.Background(), "<p>x</p>")

		assert.Equal(t, pagesmith.EUPSTREAM, pagesmith.ErrorCode(err))
	})

	t.Run("truncates long error bodies", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, strings.Repeat("x", 1000), http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := pshttp.NewHostClient(server.URL).Host(context.Background(), "<p>x</p>")

		require.Error(t, err)
		assert.Less(t, len(pagesmith.ErrorMessage(err)), 300)
		assert.True(t, strings.HasSuffix(pagesmith.ErrorMessage(err), "..."))
	})
}

func TestPublishClient_Publish(t *testing.T) {
	t.Parallel()

	t.Run("posts the repository and returns the site URL", func(t *testing.T) {
		t.Parallel()

		var got pagesmith.PublishRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/publish", r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"url":"https://example.github.io/bakery"}`))
		}))
		defer server.Close()

		url, err := pshttp.NewPublishClient(server.URL).Publish(context.Background(), pagesmith.PublishRequest{
			RepoName: "bakery",
			HTML:     "<html></html>",
			Readme:   "# Bakery",
		})

		require.NoError(t, err)
		assert.Equal(t, "https://example.github.io/bakery", url)
		assert.Equal(t, "bakery", got.RepoName)
		assert.Equal(t, "<html></html>", got.HTML)
		assert.Equal(t, "# Bakery", got.Readme)
	})

	t.Run("validates the repository name", func(t *testing.T) {
		t.Parallel()

		_, err := pshttp.NewPublishClient("http://127.0.0.1:0").Publish(context.Background(), pagesmith.PublishRequest{
			RepoName: "not valid",
			HTML:     "<html></html>",
		})

		assert.Equal(t, pagesmith.EINVALID, pagesmith.ErrorCode(err))
	})

	t.Run("requires a URL in the reply", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		_, err := pshttp.NewPublishClient(server.URL).Publish(context.Background(), pagesmith.PublishRequest{
			RepoName: "bakery",
			HTML:     "<html></html>",
		})

		assert.Equal(t, pagesmith.EUPSTREAM, pagesmith.ErrorCode(err))
	})
}

func TestHistoryClient_Restore(t *testing.T) {
	t.Parallel()

	t.Run("returns previous messages", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/create-user/user%201", r.URL.EscapedPath())
			_, _ = w.Write([]byte(`{"messages":[
				{"id":"1","role":"user","content":"A bakery","timestamp":"2026-01-02T03:04:05Z"},
				{"id":"2","role":"assistant","content":"Done","htmlCode":"<html></html>","timestamp":"2026-01-02T03:04:06Z"},
				{"id":"3","role":"system","content":"ignored"}
			]}`))
		}))
		defer server.Close()

		msgs, err := pshttp.NewHistoryClient(server.URL).Restore(context.Background(), "user 1")

		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, pagesmith.RoleUser, msgs[0].Role)
		assert.Equal(t, "<html></html>", msgs[1].HTMLCode)
		assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 6, 0, time.UTC), msgs[1].CreatedAt.UTC())
	})

	t.Run("returns nothing for a new user", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"messages":null}`))
		}))
		defer server.Close()

		msgs, err := pshttp.NewHistoryClient(server.URL).Restore(context.Background(), "u")

		require.NoError(t, err)
		assert.Empty(t, msgs)
	})

	t.Run("requires a user ID", func(t *testing.T) {
		t.Parallel()

		_, err := pshttp.NewHistoryClient("http://127.0.0.1:0").Restore(context.Background(), "")

		assert.Equal(t, pagesmith.EINVALID, pagesmith.ErrorCode(err))
	})
}
