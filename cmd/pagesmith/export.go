package main

import (
	"fmt"

	"github.com/fwojciec/pagesmith"
	"github.com/fwojciec/pagesmith/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	conv, msg, err := c.findPreview(deps)
	if err != nil {
		return fail(deps, err)
	}

	if !c.Site {
		out := msg.HTMLCode
		if c.Format == "markdown" {
			if out, err = deps.Converter.Convert(msg.HTMLCode); err != nil {
				return fail(deps, err)
			}
		}
		fmt.Fprintln(deps.Stdout, out)
		return nil
	}

	info, err := deps.Inspector.Inspect(msg.HTMLCode)
	if err != nil {
		return fail(deps, err)
	}
	if info.Title == "" {
		info.Title = conv.Title
	}
	readme, err := deps.Converter.Readme(info, msg.HTMLCode)
	if err != nil {
		return fail(deps, err)
	}

	var snaps []*pagesmith.Snapshot
	if c.Snapshots {
		if snaps, err = deps.Snapshotter.Snapshot(deps.Ctx, msg.HTMLCode, nil); err != nil {
			return fail(deps, err)
		}
	}

	store := fs.NewSiteStore(deps.Config.OutputDir, pagesmith.Slugify(info.Title))
	if err := saveSite(store, msg.HTMLCode, readme, snaps); err != nil {
		_ = store.Abort()
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Exported to %s\n", store.Dir())
	return nil
}

// findPreview returns the requested message, or the latest one carrying a
// website.
func (c *ExportCmd) findPreview(deps *Dependencies) (*pagesmith.Conversation, *pagesmith.Message, error) {
	conv, err := deps.Conversations.FindConversationByID(deps.Ctx, c.ID)
	if err != nil {
		return nil, nil, err
	}

	if c.Message != "" {
		msg, err := deps.Messages.FindMessageByID(deps.Ctx, c.Message)
		if err != nil {
			return nil, nil, err
		}
		if msg.ConversationID != conv.ID {
			return nil, nil, pagesmith.Errorf(pagesmith.ENOTFOUND, "message %q is not part of conversation %q", c.Message, c.ID)
		}
		if !msg.HasPreview() {
			return nil, nil, pagesmith.Errorf(pagesmith.ENOTFOUND, "message %q has no website", c.Message)
		}
		return conv, msg, nil
	}

	msgs, err := deps.Messages.FindMessages(deps.Ctx, pagesmith.MessageFilter{
		ConversationID: &conv.ID,
		WithPreview:    true,
	})
	if err != nil {
		return nil, nil, err
	}
	msg, ok := pagesmith.LatestPreview(msgs)
	if !ok {
		return nil, nil, pagesmith.Errorf(pagesmith.ENOTFOUND, "conversation %q has no website yet", c.ID)
	}
	return conv, msg, nil
}

func saveSite(store *fs.SiteStore, html, readme string, snaps []*pagesmith.Snapshot) error {
	if err := store.SaveHTML(html); err != nil {
		return err
	}
	if err := store.SaveReadme(readme); err != nil {
		return err
	}
	for _, snap := range snaps {
		if err := store.SaveSnapshot(snap); err != nil {
			return err
		}
	}
	return store.Commit()
}
