package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagesmith"
	"github.com/fwojciec/pagesmith/chat"
	"github.com/fwojciec/pagesmith/config"
	"github.com/fwojciec/pagesmith/fs"
	"github.com/fwojciec/pagesmith/gemini"
	"github.com/fwojciec/pagesmith/goldmark"
	"github.com/fwojciec/pagesmith/goquery"
	"github.com/fwojciec/pagesmith/htmltomarkdown"
	pshttp "github.com/fwojciec/pagesmith/http"
	"github.com/fwojciec/pagesmith/openai"
	"github.com/fwojciec/pagesmith/rod"
	psslog "github.com/fwojciec/pagesmith/slog"
	"github.com/fwojciec/pagesmith/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read by commands that accept a document on standard input.
	Stdin io.Reader

	// Config overrides loading the config file. Set before calling Run().
	Config *config.Config

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ConversationService pagesmith.ConversationService
	MessageService      pagesmith.MessageService
	Generator           pagesmith.Generator
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB == nil {
		return nil
	}
	err := m.DB.Close()
	m.DB = nil
	m.ConversationService = nil
	m.MessageService = nil
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagesmith"),
		kong.Description("Generate websites from prompts and manage the results"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagesmith --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := m.loadConfig(cli)
	if err != nil {
		return err
	}
	deps.Config = cfg
	deps.ConfigPath = configPath(cli)
	deps.Logger = newLogger(stderr, cli.Verbose)

	if cmd == "config" {
		return kongCtx.Run(deps)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Hint: edit %s or run 'pagesmith config --init'\n", configPath(cli))
		return err
	}

	deps.Users = fs.NewUserStore(cfg.UserFile)
	deps.Extractor = psslog.NewLoggingExtractor(pagesmith.Pipeline{}, deps.Logger)
	deps.Inspector = goquery.NewInspector()
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Renderer = goldmark.NewRenderer()

	switch cmd {
	case "generate", "conversations", "messages", "delete", "export", "transcript", "restore":
		if err := m.openDB(cfg.Database, stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Conversations = m.ConversationService
		deps.Messages = m.MessageService
	}

	switch cmd {
	case "generate":
		gen, err := m.newGenerator(ctx, cfg, stderr)
		if err != nil {
			return err
		}
		deps.Chat = chat.NewService(psslog.NewLoggingGenerator(gen, deps.Logger), deps.Conversations, deps.Messages, deps.Logger)
		deps.Chat.Extractor = deps.Extractor
		deps.Chat.MaxIterations = cfg.MaxIterations
		deps.Hoster = psslog.NewLoggingHoster(pshttp.NewHostClient(cfg.Host.URL), deps.Logger)
	case "host":
		deps.Hoster = psslog.NewLoggingHoster(pshttp.NewHostClient(cfg.Host.URL), deps.Logger)
	case "publish":
		deps.Publisher = psslog.NewLoggingPublisher(pshttp.NewPublishClient(cfg.PublishURL), deps.Logger)
	case "restore":
		deps.History = pshttp.NewHistoryClient(cfg.HistoryURL)
	case "snapshot", "export":
		if cmd == "export" && !(cli.Export.Site && cli.Export.Snapshots) {
			break
		}
		var opts []rod.ManagerOption
		if cfg.BrowserBin != "" {
			opts = append(opts, rod.WithBrowserBin(cfg.BrowserBin))
		}
		manager, err := rod.NewBrowserManager(opts...)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		deps.Snapshotter = rod.NewLoggingSnapshotter(rod.NewSnapshotter(manager), deps.Logger)
		defer deps.Snapshotter.Close()
	case "serve":
		deps.Server = m.newServer(cfg, cli.Serve, deps.Logger)
	}

	return kongCtx.Run(deps)
}

func (m *Main) loadConfig(cli *CLI) (*config.Config, error) {
	cfg := m.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(configPath(cli)); err != nil {
			return nil, err
		}
	}
	if cli.DB != "" {
		cfg.Database = cli.DB
	}
	return cfg, nil
}

func configPath(cli *CLI) string {
	if cli.Config != "" {
		return cli.Config
	}
	return config.DefaultPath()
}

func (m *Main) openDB(path string, stderr io.Writer) error {
	// Services set by the caller are used as is.
	if m.ConversationService != nil && m.MessageService != nil {
		return nil
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PAGESMITH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	m.ConversationService = sqlite.NewConversationService(m.DB)
	m.MessageService = sqlite.NewMessageService(m.DB)
	return nil
}

func (m *Main) newGenerator(ctx context.Context, cfg *config.Config, stderr io.Writer) (pagesmith.Generator, error) {
	if m.Generator != nil {
		return m.Generator, nil
	}

	switch cfg.Backend {
	case config.BackendGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		opts := []gemini.Option{gemini.WithModel(cfg.Gemini.Model)}
		if cfg.Gemini.MaxTokens > 0 {
			counter, err := gemini.NewTokenCounter(tokenizerModel)
			if err != nil {
				return nil, fmt.Errorf("failed to create token counter: %w", err)
			}
			opts = append(opts, gemini.WithTokenLimit(counter, cfg.Gemini.MaxTokens))
		}
		return gemini.NewGenerator(client, opts...), nil
	case config.BackendOpenAI:
		return openai.NewGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, openai.WithModel(cfg.OpenAI.Model)), nil
	default:
		opts := []pshttp.Option{pshttp.WithRateLimit(cfg.Generator.RateLimit)}
		if cfg.Generator.TimeoutSeconds > 0 {
			opts = append(opts, pshttp.WithTimeout(time.Duration(cfg.Generator.TimeoutSeconds)*time.Second))
		}
		return pshttp.NewGenerator(cfg.Generator.URL, opts...), nil
	}
}

func (m *Main) newServer(cfg *config.Config, cmd ServeCmd, logger *slog.Logger) *pshttp.HostServer {
	tunnelURL := cfg.Host.TunnelURL
	if cmd.TunnelURL != "" {
		tunnelURL = cmd.TunnelURL
	}
	var tunnel pagesmith.Tunnel
	if tunnelURL != "" {
		tunnel = pshttp.NewForwardTunnel(tunnelURL)
	}

	localURL := cfg.Host.URL
	if cmd.Addr != "" {
		localURL = localURLFor(cmd.Addr)
	}

	srv := pshttp.NewHostServer(localURL, tunnel, logger)
	srv.LiveReload = cfg.Host.LiveReload || cmd.LiveReload
	return srv
}

// tokenizerModel is the model whose local tokenizer bounds prompt size.
const tokenizerModel = "gemini-2.5-flash"

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// localURLFor returns the local URL of a server listening on addr.
func localURLFor(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://localhost" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
