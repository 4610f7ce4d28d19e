package rod

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/pagesmith"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of devices rendered at once.
const DefaultConcurrency = 3

// mobileBreakpoint is the width below which a device is emulated as mobile.
const mobileBreakpoint = 768

var _ pagesmith.Snapshotter = (*Snapshotter)(nil)

// Snapshotter renders documents at device widths and captures full-page
// PNG screenshots.
type Snapshotter struct {
	manager     *BrowserManager
	concurrency int
}

// SnapshotterOption configures a Snapshotter.
type SnapshotterOption func(*Snapshotter)

// WithConcurrency sets how many devices are rendered at once.
func WithConcurrency(n int) SnapshotterOption {
	return func(s *Snapshotter) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewSnapshotter creates a Snapshotter that owns manager.
func NewSnapshotter(manager *BrowserManager, opts ...SnapshotterOption) *Snapshotter {
	s := &Snapshotter{manager: manager, concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot renders html once per device. Results are in device order.
// With no devices, pagesmith.DefaultDevices are used.
func (s *Snapshotter) Snapshot(ctx context.Context, html string, devices []pagesmith.Device) ([]*pagesmith.Snapshot, error) {
	if strings.TrimSpace(html) == "" {
		return nil, pagesmith.Errorf(pagesmith.EINVALID, "HTML content required")
	}
	if len(devices) == 0 {
		devices = pagesmith.DefaultDevices
	}
	for _, d := range devices {
		if d.Width <= 0 || d.Height <= 0 {
			return nil, pagesmith.Errorf(pagesmith.EINVALID, "invalid size for device %q: %dx%d", d.Name, d.Width, d.Height)
		}
	}

	snapshots := make([]*pagesmith.Snapshot, len(devices))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, d := range devices {
		g.Go(func() error {
			png, err := s.capture(ctx, html, d)
			if err != nil {
				return fmt.Errorf("snapshot %s: %w", d.Name, err)
			}
			snapshots[i] = &pagesmith.Snapshot{Device: d, PNG: png}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snapshots, nil
}

func (s *Snapshotter) capture(ctx context.Context, html string, d pagesmith.Device) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, release, err := s.manager.Page(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             d.Width,
		Height:            d.Height,
		DeviceScaleFactor: 1,
		Mobile:            d.Width < mobileBreakpoint,
	}); err != nil {
		return nil, err
	}

	if err := page.SetDocumentContent(html); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	return page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
}

// Close shuts down the browser.
func (s *Snapshotter) Close() error {
	return s.manager.Close()
}
