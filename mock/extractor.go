package mock

import "github.com/fwojciec/pagesmith"

var _ pagesmith.HTMLExtractor = (*HTMLExtractor)(nil)

// HTMLExtractor is a mock implementation of pagesmith.HTMLExtractor.
type HTMLExtractor struct {
	ExtractHTMLFn func(raw pagesmith.RawResponse) pagesmith.Extraction
}

func (e *HTMLExtractor) ExtractHTML(raw pagesmith.RawResponse) pagesmith.Extraction {
	return e.ExtractHTMLFn(raw)
}
