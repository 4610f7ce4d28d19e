package pagesmith_test

import (
	"testing"

	"github.com/fwojciec/pagesmith"
	"github.com/stretchr/testify/assert"
)

func TestFormatTranscript(t *testing.T) {
	t.Parallel()

	conv := &pagesmith.Conversation{Title: "Bakery"}
	msgs := []*pagesmith.Message{
		{Role: pagesmith.RoleUser, Content: "A bakery site"},
		{Role: pagesmith.RoleAssistant, Content: "Done.", HTMLCode: "<html></html>"},
	}

	t.Run("includes documents when asked", func(t *testing.T) {
		t.Parallel()

		got := pagesmith.FormatTranscript(conv, msgs, true)

		expected := "# Bakery\n\n**You:** A bakery site\n\n**Assistant:** Done.\n\n```html\n<html></html>\n```\n"
		assert.Equal(t, expected, got)
	})

	t.Run("omits documents otherwise", func(t *testing.T) {
		t.Parallel()

		got := pagesmith.FormatTranscript(conv, msgs, false)

		expected := "# Bakery\n\n**You:** A bakery site\n\n**Assistant:** Done.\n"
		assert.Equal(t, expected, got)
	})

	t.Run("recovers the document from its own output", func(t *testing.T) {
		t.Parallel()

		e := pagesmith.ExtractHTML(pagesmith.FormatTranscript(conv, msgs, true))

		assert.Equal(t, "<html></html>", e.HTML)
	})

	t.Run("uses the default title without a conversation", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "# "+pagesmith.DefaultTitle+"\n", pagesmith.FormatTranscript(nil, nil, false))
	})
}
