package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/pagesmith"
	"github.com/fwojciec/pagesmith/chat"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	prompt := strings.Join(c.Prompt, " ")
	if strings.TrimSpace(prompt) == "" {
		return fail(deps, pagesmith.Errorf(pagesmith.EINVALID, "prompt required"))
	}
	if c.MaxIterations < 0 {
		return fail(deps, pagesmith.Errorf(pagesmith.EINVALID, "max iterations must not be negative"))
	}
	if c.MaxIterations > 0 {
		deps.Chat.MaxIterations = c.MaxIterations
	}

	convID := c.Conversation
	if convID == "" {
		userID, err := deps.Users.UserID()
		if err != nil {
			return fail(deps, err)
		}
		conv, err := deps.Chat.Start(deps.Ctx, userID, prompt)
		if err != nil {
			return fail(deps, err)
		}
		convID = conv.ID
		fmt.Fprintf(deps.Stderr, "Started conversation %s\n", conv.ID)
	}

	turn, err := deps.Chat.Send(deps.Ctx, convID, prompt)
	if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintln(deps.Stdout, turn.Assistant.Content)

	switch turn.Outcome {
	case chat.OutcomeUpstream, chat.OutcomeUnavailable:
		fmtErr(deps, turn.Err)
		return turn.Err
	case chat.OutcomeCreated:
	default:
		return nil
	}

	html := turn.Assistant.HTMLCode
	fmt.Fprintf(deps.Stderr, "Recovered %d bytes of HTML (%s, from %s)\n", len(html), turn.Extraction.Strategy, turn.Extraction.Source)

	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(html), 0644); err != nil {
			return fail(deps, err)
		}
		fmt.Fprintf(deps.Stdout, "Saved to %s\n", c.Output)
	}

	if c.Host {
		u, err := deps.Hoster.Host(deps.Ctx, html)
		if err != nil {
			return fail(deps, err)
		}
		fmt.Fprintf(deps.Stdout, "Preview: %s\n", u)
	}

	if c.Output == "" && !c.Host {
		fmt.Fprintf(deps.Stdout, "Run 'pagesmith export %s' to get the HTML.\n", convID)
	}

	return nil
}
