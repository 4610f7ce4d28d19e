package main

import (
	"fmt"

	"github.com/fwojciec/pagesmith"
)

// Run executes the restore command.
func (c *RestoreCmd) Run(deps *Dependencies) error {
	if c.UserID != "" {
		if err := deps.Users.SetUserID(c.UserID); err != nil {
			return fail(deps, err)
		}
	}
	userID, err := deps.Users.UserID()
	if err != nil {
		return fail(deps, err)
	}

	msgs, err := deps.History.Restore(deps.Ctx, userID)
	if err != nil {
		return fail(deps, err)
	}
	if len(msgs) == 0 {
		fmt.Fprintln(deps.Stdout, "No history found.")
		return nil
	}

	conv := &pagesmith.Conversation{UserID: userID, Title: restoredTitle(msgs)}
	if err := deps.Conversations.CreateConversation(deps.Ctx, conv); err != nil {
		return fail(deps, err)
	}

	for _, m := range msgs {
		msg := &pagesmith.Message{
			ConversationID: conv.ID,
			Role:           m.Role,
			Content:        m.Content,
		}
		if m.Role == pagesmith.RoleAssistant {
			msg.HTMLCode = m.HTMLCode
		}
		if err := deps.Messages.CreateMessage(deps.Ctx, msg); err != nil {
			return fail(deps, err)
		}
	}

	fmt.Fprintf(deps.Stdout, "Restored %d messages into conversation %s\n", len(msgs), conv.ID)
	return nil
}

func restoredTitle(msgs []*pagesmith.Message) string {
	for _, m := range msgs {
		if m.Role == pagesmith.RoleUser {
			return pagesmith.TitleFromPrompt(m.Content)
		}
	}
	return pagesmith.DefaultTitle
}
