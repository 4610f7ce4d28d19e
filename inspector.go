package pagesmith

// PageInfo summarizes a generated document.
type PageInfo struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Headings    []string `json:"headings,omitempty"`
	Scripts     int      `json:"scripts"`
	Stylesheets int      `json:"stylesheets"`

	// Links are the distinct absolute http(s) URLs the document links to,
	// in document order.
	Links []string `json:"links,omitempty"`
}

// Inspector reads metadata out of an HTML document.
type Inspector interface {
	// Inspect parses html and summarizes it. The title falls back to the
	// first top-level heading when the document has no title element.
	Inspect(html string) (*PageInfo, error)
}
