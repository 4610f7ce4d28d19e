package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pagesmith/config"
	main "github.com/fwojciec/pagesmith/cmd/pagesmith"
	"github.com/fwojciec/pagesmith/goldmark"
	"github.com/fwojciec/pagesmith/goquery"
	"github.com/fwojciec/pagesmith/htmltomarkdown"
)

const sitePage = `<!DOCTYPE html><html><head><title>Sunrise Bakery</title></head><body><h1>Sunrise Bakery</h1><p>Fresh bread.</p></body></html>`

// testConfig returns a valid config rooted in a temp directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Database = filepath.Join(dir, "test.db")
	cfg.UserFile = filepath.Join(dir, "user_id")
	cfg.OutputDir = filepath.Join(dir, "sites")
	return cfg
}

// fakeUsers is an in-memory main.UserStore.
type fakeUsers struct {
	id  string
	err error
}

func (u *fakeUsers) UserID() (string, error) { return u.id, u.err }

func (u *fakeUsers) SetUserID(id string) error {
	u.id = id
	return nil
}

// newDeps returns Dependencies with real document helpers and buffers for
// output.
func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:       context.Background(),
		Stdout:    stdout,
		Stderr:    stderr,
		Config:    config.Default(),
		Users:     &fakeUsers{id: "user-1"},
		Inspector: goquery.NewInspector(),
		Converter: htmltomarkdown.NewConverter(),
		Renderer:  goldmark.NewRenderer(),
	}, stdout, stderr
}

// runMain runs the CLI with cfg and gen wired in.
func runMain(t *testing.T, m *main.Main, args ...string) (string, string, error) {
	t.Helper()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	err := m.Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}
