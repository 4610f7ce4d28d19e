// Package rod renders generated documents in headless Chrome.
package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/pagesmith"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxPages is the number of pages a browser serves before it is
// replaced.
const DefaultMaxPages = 75

// BrowserManager hands out pages from a headless Chrome process. Once a
// browser has served its page budget it is swapped for a fresh one, but
// only when none of its pages are still open.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	bin      string
	maxPages int
	served   int // pages opened on the current browser
	open     int // pages not yet released
	closed   bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the page budget of one browser process.
func WithMaxPages(n int) ManagerOption {
	return func(bm *BrowserManager) {
		if n > 0 {
			bm.maxPages = n
		}
	}
}

// WithBrowserBin runs the Chrome binary at path instead of looking one up.
func WithBrowserBin(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// NewBrowserManager starts a browser. Close must be called when the
// manager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}

	browser, l, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.browser, bm.launcher = browser, l
	return bm, nil
}

// Page opens a blank page bound to ctx. The returned release func closes
// the page and must be called exactly once; further calls do nothing.
func (bm *BrowserManager) Page(ctx context.Context) (*rod.Page, func(), error) {
	browser, err := bm.acquire()
	if err != nil {
		return nil, nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		bm.release()
		return nil, nil, fmt.Errorf("opening page: %w", err)
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			_ = page.Close()
			bm.release()
		})
	}
	return page.Context(ctx), release, nil
}

func (bm *BrowserManager) acquire() (*rod.Browser, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, pagesmith.Errorf(pagesmith.EUNAVAILABLE, "browser closed")
	}
	if bm.served >= bm.maxPages && bm.open == 0 {
		bm.replace()
	}
	bm.served++
	bm.open++
	return bm.browser, nil
}

func (bm *BrowserManager) release() {
	bm.mu.Lock()
	bm.open--
	bm.mu.Unlock()
}

// Browser returns the browser pages are currently opened on.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.browser
}

// Close stops the browser. Pages still open fail from then on. Close is
// safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	return shutdown(bm.browser, bm.launcher)
}

func (bm *BrowserManager) launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("hide-scrollbars").
		Set("force-color-profile", "srgb").
		Leakless(true).
		Headless(true)
	if bm.bin != "" {
		l = l.Bin(bm.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, nil, pagesmith.Errorf(pagesmith.EUNAVAILABLE, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, pagesmith.Errorf(pagesmith.EUNAVAILABLE, "connecting to browser: %v", err)
	}
	return browser, l, nil
}

// replace swaps in a fresh browser. A failed launch keeps the old one and
// its budget is not reset, so the next acquire tries again.
// Must be called with mu held.
func (bm *BrowserManager) replace() {
	browser, l, err := bm.launch()
	if err != nil {
		return
	}
	_ = shutdown(bm.browser, bm.launcher)
	bm.browser, bm.launcher = browser, l
	bm.served = 0
}

func shutdown(browser *rod.Browser, l *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if l != nil {
		l.Kill()
	}
	return err
}
