package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/pagesmith"
	"github.com/fwojciec/pagesmith/chat"
	"github.com/fwojciec/pagesmith/config"
)

// Dependencies holds all services and configuration for command execution.
// Main wires only what the selected command needs.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *config.Config

	// ConfigPath is where Config was loaded from.
	ConfigPath string

	Users         UserStore
	Conversations pagesmith.ConversationService
	Messages      pagesmith.MessageService
	Chat          *chat.Service
	Extractor     pagesmith.HTMLExtractor
	Hoster        pagesmith.Hoster
	Publisher     pagesmith.Publisher
	History       pagesmith.HistoryService
	Inspector     Inspector
	Converter     ReadmeConverter
	Renderer      PageRenderer
	Snapshotter   pagesmith.Snapshotter
	Server        Server
}

// UserStore holds the local user's identifier.
type UserStore interface {
	UserID() (string, error)
	SetUserID(id string) error
}

// Inspector summarizes documents and names repositories after them.
type Inspector interface {
	pagesmith.Inspector
	SuggestRepoName(html string) string
}

// ReadmeConverter converts documents to Markdown.
type ReadmeConverter interface {
	pagesmith.Converter
	Readme(info *pagesmith.PageInfo, html string) (string, error)
}

// PageRenderer renders Markdown fragments and standalone pages.
type PageRenderer interface {
	pagesmith.Renderer
	RenderPage(title, markdown string) (string, error)
}

// Server is the local hosting server.
type Server interface {
	pagesmith.Hoster
	ListenAndServe(ctx context.Context, addr string) error
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Config file path" type:"path" env:"PAGESMITH_CONFIG"`
	DB      string `help:"Database path (overrides config)" type:"path" env:"PAGESMITH_DB"`
	Verbose bool   `short:"v" help:"Log service calls to stderr"`

	Generate      GenerateCmd      `cmd:"" help:"Generate a website from a prompt"`
	Extract       ExtractCmd       `cmd:"" help:"Extract the HTML document from a raw service response"`
	Inspect       InspectCmd       `cmd:"" help:"Summarize an HTML document"`
	Conversations ConversationsCmd `cmd:"" help:"List your conversations"`
	Messages      MessagesCmd      `cmd:"" help:"List the messages of a conversation"`
	Delete        DeleteCmd        `cmd:"" help:"Delete a conversation and its messages"`
	Export        ExportCmd        `cmd:"" help:"Export the latest website of a conversation"`
	Transcript    TranscriptCmd    `cmd:"" help:"Render a conversation transcript"`
	Host          HostCmd          `cmd:"" help:"Upload a document to the hosting server"`
	Publish       PublishCmd       `cmd:"" help:"Publish a document as a repository"`
	Snapshot      SnapshotCmd      `cmd:"" help:"Capture device-width screenshots of a document"`
	Serve         ServeCmd         `cmd:"" help:"Run the local hosting server"`
	Restore       RestoreCmd       `cmd:"" help:"Restore message history from the remote store"`
	ConfigCmd     ConfigCmd        `cmd:"" name:"config" help:"Show or initialize configuration"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	Prompt        []string `arg:"" help:"What to build"`
	Conversation  string   `short:"c" help:"Continue an existing conversation"`
	MaxIterations int      `help:"Refinement budget sent to the generation service"`
	Output        string   `short:"o" type:"path" help:"Write the generated HTML to a file"`
	Host          bool     `help:"Upload the generated HTML to the hosting server"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File string `arg:"" optional:"" type:"path" help:"Response file (default stdin)"`
	JSON bool   `help:"Print the extraction result as JSON"`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	File string `arg:"" optional:"" type:"path" help:"HTML file (default stdin)"`
}

// ConversationsCmd is the "conversations" subcommand.
type ConversationsCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum conversations to list"`
}

// MessagesCmd is the "messages" subcommand.
type MessagesCmd struct {
	ID      string `arg:"" help:"Conversation ID"`
	Preview bool   `help:"Only messages carrying a website"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Conversation ID"`
	Force bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID        string `arg:"" help:"Conversation ID"`
	Message   string `short:"m" help:"Export this message instead of the latest website"`
	Format    string `short:"f" enum:"html,markdown" default:"html" help:"Output format (html, markdown)"`
	Site      bool   `help:"Write index.html and README.md to a site directory instead of stdout"`
	Snapshots bool   `help:"With --site, also capture device screenshots"`
}

// TranscriptCmd is the "transcript" subcommand.
type TranscriptCmd struct {
	ID          string `arg:"" help:"Conversation ID"`
	Format      string `short:"f" enum:"markdown,html" default:"markdown" help:"Output format (markdown, html)"`
	IncludeHTML bool   `help:"Include generated documents"`
}

// HostCmd is the "host" subcommand.
type HostCmd struct {
	File string `arg:"" optional:"" type:"path" help:"HTML file (default stdin)"`
}

// PublishCmd is the "publish" subcommand.
type PublishCmd struct {
	File string `arg:"" optional:"" type:"path" help:"HTML file (default stdin)"`
	Name string `short:"n" help:"Repository name (default derived from the page title)"`
}

// SnapshotCmd is the "snapshot" subcommand.
type SnapshotCmd struct {
	File   string   `arg:"" optional:"" type:"path" help:"HTML file (default stdin)"`
	Device []string `short:"d" help:"Device to capture (desktop, tablet, mobile); repeatable"`
	Name   string   `short:"n" help:"Output directory name (default derived from the page title)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr       string `help:"Listen address (overrides config)"`
	TunnelURL  string `help:"Public URL of an externally run tunnel (overrides config)"`
	LiveReload bool   `help:"Reload open pages when a new document is hosted"`
}

// RestoreCmd is the "restore" subcommand.
type RestoreCmd struct {
	UserID string `arg:"" optional:"" help:"Restore another user's history and adopt their ID"`
}

// ConfigCmd is the "config" subcommand.
type ConfigCmd struct {
	Init bool `help:"Write the effective configuration to the config file"`
}
