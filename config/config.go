// Package config loads pagesmith settings from ~/.pagesmith/config.yaml and
// PAGESMITH_* environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pagesmith"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys: PAGESMITH_GEMINI__MODEL sets gemini.model.
const EnvPrefix = "PAGESMITH_"

// Backend selects the Generator implementation.
type Backend string

// Backend constants.
const (
	BackendHTTP   Backend = "http"
	BackendGemini Backend = "gemini"
	BackendOpenAI Backend = "openai"
)

// Config is the top-level pagesmith configuration.
type Config struct {
	Backend       Backend `yaml:"backend" koanf:"backend"`
	Database      string  `yaml:"database" koanf:"database"`
	UserFile      string  `yaml:"user_file" koanf:"user_file"`
	OutputDir     string  `yaml:"output_dir" koanf:"output_dir"`
	MaxIterations int     `yaml:"max_iterations" koanf:"max_iterations"`

	Generator GeneratorConfig `yaml:"generator" koanf:"generator"`
	Gemini    GeminiConfig    `yaml:"gemini" koanf:"gemini"`
	OpenAI    OpenAIConfig    `yaml:"openai" koanf:"openai"`
	Host      HostConfig      `yaml:"host" koanf:"host"`

	PublishURL string `yaml:"publish_url" koanf:"publish_url"`
	HistoryURL string `yaml:"history_url" koanf:"history_url"`

	// BrowserBin is the Chrome binary used for snapshots. Empty means the
	// launcher looks one up or downloads it.
	BrowserBin string `yaml:"browser_bin,omitempty" koanf:"browser_bin"`
}

// GeneratorConfig configures the HTTP generation service.
type GeneratorConfig struct {
	URL            string  `yaml:"url" koanf:"url"`
	TimeoutSeconds int     `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	RateLimit      float64 `yaml:"rate_limit" koanf:"rate_limit"`
}

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	APIKey    string `yaml:"api_key,omitempty" koanf:"api_key"`
	Model     string `yaml:"model" koanf:"model"`
	MaxTokens int    `yaml:"max_tokens" koanf:"max_tokens"`
}

// OpenAIConfig configures the OpenAI compatible backend.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key,omitempty" koanf:"api_key"`
	BaseURL string `yaml:"base_url,omitempty" koanf:"base_url"`
	Model   string `yaml:"model" koanf:"model"`
}

// HostConfig configures the hosting server and its client.
type HostConfig struct {
	URL        string `yaml:"url" koanf:"url"`
	Addr       string `yaml:"addr" koanf:"addr"`
	TunnelURL  string `yaml:"tunnel_url,omitempty" koanf:"tunnel_url"`
	LiveReload bool   `yaml:"live_reload" koanf:"live_reload"`
}

// Dir returns the pagesmith home directory, ~/.pagesmith.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pagesmith"
	}
	return filepath.Join(home, ".pagesmith")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the built-in configuration.
func Default() *Config {
	dir := Dir()
	return &Config{
		Backend:       BackendHTTP,
		Database:      filepath.Join(dir, "pagesmith.db"),
		UserFile:      filepath.Join(dir, "user_id"),
		OutputDir:     filepath.Join(dir, "sites"),
		MaxIterations: pagesmith.DefaultMaxIterations,
		Generator: GeneratorConfig{
			URL:            "http://localhost:8000",
			TimeoutSeconds: 300,
		},
		Gemini: GeminiConfig{
			Model:     "gemini-2.5-flash",
			MaxTokens: 100000,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Host: HostConfig{
			URL:  "http://localhost:3003",
			Addr: ":3003",
		},
		PublishURL: "http://localhost:3001",
		HistoryURL: "https://create-folder.onrender.com",
	}
}

// Load reads configuration from the given YAML file, if it exists, then
// overlays environment variable overrides. The conventional GEMINI_API_KEY
// and OPENAI_API_KEY variables fill in API keys left unset.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return cfg, nil
}

// envKey maps PAGESMITH_HOST__LIVE_RELOAD to host.live_reload.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to path as YAML. API keys are not written.
func (c *Config) Save(path string) error {
	out := *c
	out.Gemini.APIKey = ""
	out.OpenAI.APIKey = ""

	data, err := yamlv3.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validBackends = map[Backend]bool{
	BackendHTTP:   true,
	BackendGemini: true,
	BackendOpenAI: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if !validBackends[c.Backend] {
		return pagesmith.Errorf(pagesmith.EINVALID, "invalid backend %q: must be one of http, gemini, openai", c.Backend)
	}
	if c.Database == "" {
		return pagesmith.Errorf(pagesmith.EINVALID, "database is required")
	}
	if c.MaxIterations < 0 {
		return pagesmith.Errorf(pagesmith.EINVALID, "max_iterations must be non-negative")
	}
	if c.Generator.TimeoutSeconds < 0 {
		return pagesmith.Errorf(pagesmith.EINVALID, "generator.timeout_seconds must be non-negative")
	}
	if c.Generator.RateLimit < 0 {
		return pagesmith.Errorf(pagesmith.EINVALID, "generator.rate_limit must be non-negative")
	}
	if c.Gemini.MaxTokens < 0 {
		return pagesmith.Errorf(pagesmith.EINVALID, "gemini.max_tokens must be non-negative")
	}

	urls := map[string]string{
		"generator.url": c.Generator.URL,
		"host.url":      c.Host.URL,
		"publish_url":   c.PublishURL,
		"history_url":   c.HistoryURL,
	}
	if c.Host.TunnelURL != "" {
		urls["host.tunnel_url"] = c.Host.TunnelURL
	}
	if c.OpenAI.BaseURL != "" {
		urls["openai.base_url"] = c.OpenAI.BaseURL
	}
	for name, raw := range urls {
		if err := validateURL(raw); err != nil {
			return pagesmith.Errorf(pagesmith.EINVALID, "%s: %v", name, err)
		}
	}

	switch c.Backend {
	case BackendGemini:
		if c.Gemini.APIKey == "" {
			return pagesmith.Errorf(pagesmith.EINVALID, "gemini backend requires an API key (GEMINI_API_KEY)")
		}
	case BackendOpenAI:
		if c.OpenAI.APIKey == "" && c.OpenAI.BaseURL == "" {
			return pagesmith.Errorf(pagesmith.EINVALID, "openai backend requires an API key (OPENAI_API_KEY) or base_url")
		}
	}

	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	return nil
}
