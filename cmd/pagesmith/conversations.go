package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pagesmith"
)

// Run executes the conversations command.
func (c *ConversationsCmd) Run(deps *Dependencies) error {
	userID, err := deps.Users.UserID()
	if err != nil {
		return fail(deps, err)
	}

	convs, err := deps.Conversations.FindConversations(deps.Ctx, pagesmith.ConversationFilter{
		UserID: &userID,
		Limit:  c.Limit,
	})
	if err != nil {
		return fail(deps, err)
	}

	if len(convs) == 0 {
		fmt.Fprintln(deps.Stdout, "No conversations found. Use 'pagesmith generate' to start one.")
		return nil
	}

	for _, conv := range convs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", conv.ID, conv.UpdatedAt.Local().Format(time.DateTime), conv.Title)
	}
	return nil
}

// Run executes the messages command.
func (c *MessagesCmd) Run(deps *Dependencies) error {
	if _, err := deps.Conversations.FindConversationByID(deps.Ctx, c.ID); err != nil {
		return fail(deps, err)
	}

	msgs, err := deps.Messages.FindMessages(deps.Ctx, pagesmith.MessageFilter{
		ConversationID: &c.ID,
		WithPreview:    c.Preview,
	})
	if err != nil {
		return fail(deps, err)
	}

	for _, msg := range msgs {
		marker := " "
		if msg.HasPreview() {
			marker = "*"
		}
		fmt.Fprintf(deps.Stdout, "%s %3d  %-9s  %s  %s\n", marker, msg.Position, msg.Role, msg.ID, oneLine(msg.Content, 72))
	}
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return pagesmith.Errorf(pagesmith.EINVALID, "use --force to confirm deletion")
	}

	conv, err := deps.Conversations.FindConversationByID(deps.Ctx, c.ID)
	if err != nil {
		if pagesmith.ErrorCode(err) == pagesmith.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: conversation %q not found. Use 'pagesmith conversations' to see available conversations.\n", c.ID)
			return err
		}
		return fail(deps, err)
	}

	if err := deps.Conversations.DeleteConversation(deps.Ctx, conv.ID); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Deleted conversation %q\n", conv.Title)
	return nil
}

// oneLine collapses whitespace and cuts s to n runes.
func oneLine(s string, n int) string {
	r := []rune(strings.Join(strings.Fields(s), " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
