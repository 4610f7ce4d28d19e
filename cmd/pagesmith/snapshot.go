package main

import (
	"fmt"

	"github.com/fwojciec/pagesmith"
	"github.com/fwojciec/pagesmith/fs"
)

// Run executes the snapshot command.
func (c *SnapshotCmd) Run(deps *Dependencies) error {
	html, err := readDocument(deps, c.File)
	if err != nil {
		return fail(deps, err)
	}

	var devices []pagesmith.Device
	for _, name := range c.Device {
		d, ok := pagesmith.FindDevice(name)
		if !ok {
			return fail(deps, pagesmith.Errorf(pagesmith.EINVALID, "unknown device %q", name))
		}
		devices = append(devices, d)
	}

	snaps, err := deps.Snapshotter.Snapshot(deps.Ctx, html, devices)
	if err != nil {
		return fail(deps, err)
	}

	name := c.Name
	if name == "" {
		name = deps.Inspector.SuggestRepoName(html)
	}
	store := fs.NewSiteStore(deps.Config.OutputDir, pagesmith.Slugify(name)+"-snapshots")
	for _, snap := range snaps {
		if err := store.SaveSnapshot(snap); err != nil {
			_ = store.Abort()
			return fail(deps, err)
		}
	}
	if err := store.Commit(); err != nil {
		return fail(deps, err)
	}

	for _, snap := range snaps {
		fmt.Fprintf(deps.Stdout, "%-8s %4dx%-4d %d bytes\n", snap.Device.Name, snap.Device.Width, snap.Device.Height, len(snap.PNG))
	}
	fmt.Fprintf(deps.Stdout, "Saved to %s\n", store.Dir())
	return nil
}
