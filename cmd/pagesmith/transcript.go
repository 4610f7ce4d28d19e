package main

import (
	"fmt"

	"github.com/fwojciec/pagesmith"
)

// Run executes the transcript command.
func (c *TranscriptCmd) Run(deps *Dependencies) error {
	conv, err := deps.Conversations.FindConversationByID(deps.Ctx, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	msgs, err := deps.Messages.FindMessages(deps.Ctx, pagesmith.MessageFilter{ConversationID: &conv.ID})
	if err != nil {
		return fail(deps, err)
	}

	out := pagesmith.FormatTranscript(conv, msgs, c.IncludeHTML)
	if c.Format == "html" {
		if out, err = deps.Renderer.RenderPage(conv.Title, out); err != nil {
			return fail(deps, err)
		}
	}

	fmt.Fprint(deps.Stdout, out)
	return nil
}
