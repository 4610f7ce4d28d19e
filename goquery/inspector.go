// Package goquery inspects generated HTML documents with goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagesmith"
)

var _ pagesmith.Inspector = (*Inspector)(nil)

// Inspector implements pagesmith.Inspector.
type Inspector struct{}

// NewInspector creates a new Inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect parses html and summarizes it.
func (i *Inspector) Inspect(html string) (*pagesmith.PageInfo, error) {
	if strings.TrimSpace(html) == "" {
		return nil, pagesmith.Errorf(pagesmith.EINVALID, "HTML content required")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pagesmith.Errorf(pagesmith.EINVALID, "failed to parse HTML: %v", err)
	}

	info := &pagesmith.PageInfo{
		Title:       collapse(doc.Find("head title").First().Text()),
		Description: metaContent(doc, "description"),
		Scripts:     doc.Find("script").Length(),
		Stylesheets: doc.Find(`link[rel="stylesheet"], style`).Length(),
		Links:       externalLinks(doc),
	}

	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		if text := collapse(sel.Text()); text != "" {
			info.Headings = append(info.Headings, text)
		}
	})

	if info.Title == "" {
		info.Title = collapse(doc.Find("h1").First().Text())
	}

	return info, nil
}

// SuggestRepoName derives a repository name from the document's title,
// falling back to pagesmith.DefaultSlug.
func (i *Inspector) SuggestRepoName(html string) string {
	info, err := i.Inspect(html)
	if err != nil {
		return pagesmith.DefaultSlug
	}
	return pagesmith.Slugify(info.Title)
}

func metaContent(doc *goquery.Document, name string) string {
	var content string
	doc.Find("meta[name]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !strings.EqualFold(sel.AttrOr("name", ""), name) {
			return true
		}
		content = collapse(sel.AttrOr("content", ""))
		return false
	})
	return content
}

// externalLinks collects absolute http(s) hrefs, deduplicated with the
// fragment stripped.
func externalLinks(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" || isNonHTTPLink(href) {
			return
		}

		u, err := url.Parse(href)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return
		}
		u.Fragment = ""

		s := u.String()
		if seen[s] {
			return
		}
		seen[s] = true
		links = append(links, s)
	})

	return links
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
