package pagesmith

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms a generated document into Markdown, e.g. for a
	// repository README.
	Convert(html string) (string, error)
}

// Renderer converts Markdown to HTML.
type Renderer interface {
	// Render returns an HTML fragment for the given Markdown source.
	Render(markdown string) (string, error)
}
