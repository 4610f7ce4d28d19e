package pagesmith

import (
	"fmt"
	"strings"
)

// FormatTranscript renders a conversation as Markdown. Documents attached
// to assistant messages are included as fenced html blocks when
// includeHTML is set.
func FormatTranscript(conv *Conversation, msgs []*Message, includeHTML bool) string {
	var sb strings.Builder

	title := DefaultTitle
	if conv != nil && conv.Title != "" {
		title = conv.Title
	}
	fmt.Fprintf(&sb, "# %s\n", title)

	for _, m := range msgs {
		speaker := "You"
		if m.Role == RoleAssistant {
			speaker = "Assistant"
		}
		fmt.Fprintf(&sb, "\n**%s:** %s\n", speaker, m.Content)

		if includeHTML && m.HasPreview() {
			sb.WriteString("\n```html\n")
			sb.WriteString(m.HTMLCode)
			sb.WriteString("\n```\n")
		}
	}

	return sb.String()
}
