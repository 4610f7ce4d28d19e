package mock

import "github.com/fwojciec/pagesmith"

var (
	_ pagesmith.Converter = (*Converter)(nil)
	_ pagesmith.Renderer  = (*Renderer)(nil)
)

// Converter is a mock implementation of pagesmith.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// Renderer is a mock implementation of pagesmith.Renderer.
type Renderer struct {
	RenderFn func(markdown string) (string, error)
}

func (r *Renderer) Render(markdown string) (string, error) {
	return r.RenderFn(markdown)
}
