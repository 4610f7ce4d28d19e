package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/pagesmith"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"
)

// MaxUploadSize bounds the body of POST /host-html.
const MaxUploadSize = 10 << 20

// ShutdownTimeout bounds graceful shutdown of the hosting server.
const ShutdownTimeout = 5 * time.Second

const noContentPage = "<h1>No HTML content hosted yet</h1><p>Please host some HTML content first.</p>"

// Ensure HostServer implements pagesmith.Hoster at compile time.
var _ pagesmith.Hoster = (*HostServer)(nil)

// HostServer serves the most recently hosted document at its root and
// accepts new documents over HTTP. A Tunnel, when configured, is opened on
// the first upload; until it succeeds the local URL is handed out.
type HostServer struct {
	// LocalURL is the address the server is reachable at locally.
	LocalURL string

	// Tunnel is optional.
	Tunnel pagesmith.Tunnel

	// LiveReload injects a script into the served document that reloads
	// the page whenever a new document is hosted.
	LiveReload bool

	Logger *slog.Logger

	mu   sync.RWMutex
	html string

	tunnelMu  sync.Mutex
	tunnelURL string

	live *liveHub
}

// NewHostServer creates a HostServer reachable locally at localURL.
func NewHostServer(localURL string, tunnel pagesmith.Tunnel, logger *slog.Logger) *HostServer {
	return &HostServer{
		LocalURL: strings.TrimRight(localURL, "/"),
		Tunnel:   tunnel,
		Logger:   logger,
		live:     newLiveHub(),
	}
}

// Host replaces the hosted document and returns the URL it is served at.
func (s *HostServer) Host(ctx context.Context, html string) (string, error) {
	if html == "" {
		return "", pagesmith.Errorf(pagesmith.EINVALID, "HTML content is required")
	}

	s.mu.Lock()
	s.html = html
	s.mu.Unlock()

	u, _ := s.ensureTunnel(ctx)
	s.live.broadcast(liveEvent{Type: "updated", URL: u})
	return u, nil
}

// CurrentURL returns the public URL when a tunnel is open, otherwise the
// local URL.
func (s *HostServer) CurrentURL() (string, pagesmith.URLType) {
	s.tunnelMu.Lock()
	defer s.tunnelMu.Unlock()
	if s.tunnelURL != "" {
		return s.tunnelURL, pagesmith.URLTypeTunnel
	}
	return s.LocalURL, pagesmith.URLTypeLocal
}

// ensureTunnel opens the tunnel if it is not open yet. A failed attempt
// falls back to the local URL and is retried on the next upload.
func (s *HostServer) ensureTunnel(ctx context.Context) (string, pagesmith.URLType) {
	s.tunnelMu.Lock()
	defer s.tunnelMu.Unlock()

	if s.tunnelURL != "" {
		return s.tunnelURL, pagesmith.URLTypeTunnel
	}
	if s.Tunnel == nil {
		return s.LocalURL, pagesmith.URLTypeLocal
	}

	u, err := s.Tunnel.Open(ctx, s.LocalURL)
	if err != nil || u == "" {
		s.logger().Warn("tunnel unavailable, using local URL", "err", err)
		return s.LocalURL, pagesmith.URLTypeLocal
	}
	s.tunnelURL = u
	s.logger().Info("tunnel opened", "url", u)
	return u, pagesmith.URLTypeTunnel
}

// Handler returns the HTTP handler serving all routes.
func (s *HostServer) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleIndex)
	r.Post("/host-html", s.handleHostHTML)
	r.Get("/current-url", s.handleCurrentURL)
	r.Get("/health", s.handleHealth)
	r.Get("/test", s.handleTest)
	r.Get("/live", s.live.handle)

	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully and closes the tunnel.
func (s *HostServer) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger().Info("hosting server listening", "addr", addr, "url", s.LocalURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		s.live.closeAll()
		err := srv.Shutdown(shutdownCtx)
		if s.Tunnel != nil {
			err = errors.Join(err, s.Tunnel.Close())
		}
		return err
	})

	return g.Wait()
}

func (s *HostServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	html := s.html
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if html == "" {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(noContentPage))
		return
	}

	if s.LiveReload {
		html = injectLiveReload(html)
	}
	_, _ = w.Write([]byte(html))
}

func (s *HostServer) handleHostHTML(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)

	var req hostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, hostResponse{Error: "HTML content too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, hostResponse{Error: "invalid JSON body"})
		return
	}

	u, err := s.Host(r.Context(), req.HTMLContent)
	if pagesmith.ErrorCode(err) == pagesmith.EINVALID {
		writeJSON(w, http.StatusBadRequest, hostResponse{Error: pagesmith.ErrorMessage(err)})
		return
	} else if err != nil {
		writeJSON(w, http.StatusInternalServerError, hostResponse{Error: "Failed to host HTML content"})
		return
	}

	writeJSON(w, http.StatusOK, hostResponse{
		Success: true,
		URL:     u,
		Message: "HTML content hosted successfully",
	})
}

type currentURLResponse struct {
	URL  string            `json:"url"`
	Type pagesmith.URLType `json:"type"`
}

func (s *HostServer) handleCurrentURL(w http.ResponseWriter, r *http.Request) {
	u, typ := s.CurrentURL()
	writeJSON(w, http.StatusOK, currentURLResponse{URL: u, Type: typ})
}

type healthResponse struct {
	Status       string `json:"status"`
	LocalURL     string `json:"localUrl"`
	TunnelActive bool   `json:"tunnelActive"`
	TunnelURL    string `json:"tunnelUrl,omitempty"`
	Hosting      bool   `json:"hosting"`
	LiveClients  int    `json:"liveClients"`
}

func (s *HostServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	u, typ := s.CurrentURL()

	s.mu.RLock()
	hosting := s.html != ""
	s.mu.RUnlock()

	resp := healthResponse{
		Status:       "OK",
		LocalURL:     s.LocalURL,
		TunnelActive: typ == pagesmith.URLTypeTunnel,
		Hosting:      hosting,
		LiveClients:  s.live.count(),
	}
	if resp.TunnelActive {
		resp.TunnelURL = u
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HostServer) handleTest(w http.ResponseWriter, r *http.Request) {
	u, typ := s.CurrentURL()
	tunnel := "Not active"
	if typ == pagesmith.URLTypeTunnel {
		tunnel = u
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
<h1>Server is working!</h1>
<p>This is a test HTML page served from the hosting server.</p>
<p>Tunnel URL: %s</p>
<p>Local URL: %s</p>
</body>
</html>
`, tunnel, s.LocalURL)
}

func (s *HostServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		begin := time.Now()
		next.ServeHTTP(ww, r)
		s.logger().Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(begin),
		)
	})
}

func (s *HostServer) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
