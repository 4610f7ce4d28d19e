// Package htmltomarkdown turns generated pages into Markdown, mainly for
// repository READMEs and exports.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/pagesmith"
)

// Ensure Converter implements pagesmith.Converter at compile time.
var _ pagesmith.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", pagesmith.Errorf(pagesmith.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", pagesmith.Errorf(pagesmith.EINTERNAL, "convert HTML: %v", err)
	}

	return strings.TrimSpace(result), nil
}

// Readme builds a repository README for a published page: a title heading,
// the page description, the converted page body and a note on how to view
// the site.
func (c *Converter) Readme(info *pagesmith.PageInfo, html string) (string, error) {
	body, err := c.Convert(html)
	if err != nil {
		return "", err
	}

	title := pagesmith.DefaultTitle
	var description string
	if info != nil {
		if info.Title != "" {
			title = info.Title
		}
		description = info.Description
	}

	var sb strings.Builder
	sb.WriteString("# " + title + "\n\n")
	if description != "" {
		sb.WriteString(description + "\n\n")
	}
	if body != "" && !strings.HasPrefix(body, "# "+title) {
		sb.WriteString("## Contents\n\n")
		sb.WriteString(body + "\n\n")
	}
	sb.WriteString("## Viewing\n\nOpen `index.html` in a browser, or enable GitHub Pages for this repository.\n")

	return sb.String(), nil
}
