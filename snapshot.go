package pagesmith

import "context"

// Device is a viewport a document is previewed at.
type Device struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// DefaultDevices are the preview viewports: desktop, tablet and mobile.
var DefaultDevices = []Device{
	{Name: "desktop", Width: 1280, Height: 800},
	{Name: "tablet", Width: 768, Height: 1024},
	{Name: "mobile", Width: 375, Height: 812},
}

// FindDevice returns the default device with the given name.
func FindDevice(name string) (Device, bool) {
	for _, d := range DefaultDevices {
		if d.Name == name {
			return d, true
		}
	}
	return Device{}, false
}

// Snapshot is a rendered image of a document at one device width.
type Snapshot struct {
	Device Device
	PNG    []byte
}

// Snapshotter renders documents in a browser.
type Snapshotter interface {
	// Snapshot renders html once per device and returns the screenshots
	// in device order.
	Snapshot(ctx context.Context, html string, devices []Device) ([]*Snapshot, error)

	// Close releases browser resources.
	Close() error
}
