// Package goldmark renders Markdown transcripts to HTML.
package goldmark

import (
	"bytes"
	"html/template"

	"github.com/fwojciec/pagesmith"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var _ pagesmith.Renderer = (*Renderer)(nil)

// Renderer implements pagesmith.Renderer with GitHub flavored Markdown and
// syntax highlighted code blocks. Raw HTML in the source is not rendered,
// so documents quoted in a transcript stay inert.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
	}
}

// Render converts markdown to an HTML fragment.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", pagesmith.Errorf(pagesmith.EINTERNAL, "render markdown: %v", err)
	}
	return buf.String(), nil
}

// RenderPage renders markdown into a standalone HTML page.
func (r *Renderer) RenderPage(title, markdown string) (string, error) {
	body, err := r.Render(markdown)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body)}); err != nil {
		return "", pagesmith.Errorf(pagesmith.EINTERNAL, "render page: %v", err)
	}
	return buf.String(), nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { max-width: 48rem; margin: 2rem auto; padding: 0 1rem; font-family: system-ui, sans-serif; line-height: 1.5; }
pre { overflow-x: auto; padding: 1rem; border-radius: 6px; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))
