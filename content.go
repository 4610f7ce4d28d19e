package pagesmith

import (
	"regexp"
	"strings"
)

// Reasoning delimiters. Everything through the first ReasoningEnd is scratch
// text and never part of a document.
const (
	ReasoningStart = "<think>"
	ReasoningEnd   = "</think>"
)

const closingRootTag = "</html>"

var (
	// fencePattern matches a triple-backtick block. A language tag is only
	// recognized when it ends the opening line. Group 1 is the tag, group 2
	// the body.
	fencePattern = regexp.MustCompile("(?s)```(?:([A-Za-z0-9_+.-]*)[ \t]*\r?\n)?(.*?)```")

	doctypePattern = regexp.MustCompile(`(?is)<!DOCTYPE\s+html\b.*</html\s*>`)
	rootTagPattern = regexp.MustCompile(`(?is)<html(?:\s[^>]*)?>.*</html\s*>`)
)

// contentMatchers are tried in order over a candidate whose preamble has
// been removed. The first match wins.
var contentMatchers = []struct {
	strategy Strategy
	match    func(string) (string, bool)
}{
	{StrategyFenced, MatchFenced},
	{StrategyDoctype, MatchDoctype},
	{StrategyRootTag, MatchRootTag},
	{StrategyHeuristic, MatchHeuristic},
	{StrategyMarkup, MatchMarkup},
}

// ExtractContent isolates an HTML document in an arbitrary string.
func ExtractContent(s string) Extraction {
	s = StripPreamble(s)
	for _, m := range contentMatchers {
		if html, ok := m.match(s); ok && html != "" {
			return Extraction{HTML: html, Strategy: m.strategy}
		}
	}
	return NotFound
}

// StripPreamble discards everything up to and including the first
// reasoning end delimiter, then trims. Strings without the delimiter are
// returned unchanged.
func StripPreamble(s string) string {
	if i := strings.Index(s, ReasoningEnd); i >= 0 {
		return strings.TrimSpace(s[i+len(ReasoningEnd):])
	}
	return s
}

// MatchFenced returns the trimmed body of the fenced block holding the
// document. The first block wins when it looks like markup. Otherwise later
// blocks are scanned for one that looks like a document, then for one
// holding an angle-bracket pair.
func MatchFenced(s string) (string, bool) {
	blocks := fencePattern.FindAllStringSubmatch(s, -1)
	if len(blocks) == 0 {
		return "", false
	}

	bodies := make([]string, len(blocks))
	for i, b := range blocks {
		bodies[i] = strings.TrimSpace(StripPreamble(b[2]))
	}

	if first := bodies[0]; looksLikeDocument(first) || strings.HasPrefix(first, "<") {
		return first, true
	}

	rest := bodies[1:]
	for _, body := range rest {
		if looksLikeDocument(body) {
			return body, true
		}
	}
	for _, body := range rest {
		if hasAngleBrackets(body) {
			return body, true
		}
	}

	return "", false
}

// MatchDoctype returns the longest span from a document-type declaration to
// the last closing root tag.
func MatchDoctype(s string) (string, bool) {
	m := doctypePattern.FindString(s)
	return m, m != ""
}

// MatchRootTag returns the longest span from an opening root tag to the last
// closing root tag.
func MatchRootTag(s string) (string, bool) {
	m := rootTagPattern.FindString(s)
	return m, m != ""
}

// MatchHeuristic returns the span from the first document-type marker (or,
// failing that, the first opening root tag) to the end of the last closing
// root tag, provided the close follows the open. It tolerates markup the
// strict matchers reject and may return a malformed span when an unrelated
// closing tag follows the document.
func MatchHeuristic(s string) (string, bool) {
	start := indexFold(s, "<!doctype")
	if start < 0 {
		start = indexFold(s, "<html")
	}
	if start < 0 {
		return "", false
	}

	end := lastIndexFold(s, closingRootTag)
	if end < 0 {
		return "", false
	}
	end += len(closingRootTag)
	if end <= start {
		return "", false
	}

	return s[start:end], true
}

// MatchMarkup returns the trimmed candidate when it is bare markup: it
// starts with a tag other than the reasoning delimiter and holds an
// angle-bracket pair.
func MatchMarkup(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "<") || hasPrefixFold(s, ReasoningStart) {
		return "", false
	}
	if !hasAngleBrackets(s) {
		return "", false
	}
	return s, true
}

func looksLikeDocument(s string) bool {
	return indexFold(s, "<!doctype") >= 0 || indexFold(s, "<html") >= 0
}

func hasAngleBrackets(s string) bool {
	i := strings.IndexByte(s, '<')
	return i >= 0 && strings.IndexByte(s[i:], '>') >= 0
}

// indexFold, lastIndexFold and hasPrefixFold fold ASCII only, so byte
// offsets always refer to the original string. substr must be lower case.
func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if hasPrefixFold(s[i:], substr) {
			return i
		}
	}
	return -1
}

func lastIndexFold(s, substr string) int {
	for i := len(s) - len(substr); i >= 0; i-- {
		if hasPrefixFold(s[i:], substr) {
			return i
		}
	}
	return -1
}

func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if lowerASCII(s[i]) != prefix[i] {
			return false
		}
	}
	return true
}

func lowerASCII(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
