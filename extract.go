package pagesmith

import (
	"bytes"
	"encoding/json"
	"strings"
)

// RawResponse is a generation service reply in whatever shape the transport
// decoded it into: a string, raw bytes, a generic JSON value, or any other
// JSON-encodable Go value.
type RawResponse = any

// Strategy identifies the rule that recovered a document.
type Strategy string

// Strategy constants, in the order the content extractor tries them.
// The zero value means no document was found.
const (
	StrategyNone      Strategy = ""
	StrategyFenced    Strategy = "fenced"
	StrategyDoctype   Strategy = "doctype"
	StrategyRootTag   Strategy = "root-tag"
	StrategyHeuristic Strategy = "heuristic"
	StrategyMarkup    Strategy = "markup"
)

// Source identifies which stage produced the candidate the document was
// recovered from.
type Source string

// Source constants for Extraction.
const (
	SourceText       Source = "text"
	SourceStream     Source = "stream"
	SourceField      Source = "field"
	SourceSerialized Source = "serialized"
)

// Extraction is the outcome of running the pipeline over one response.
// A found extraction always carries a non-empty HTML document.
type Extraction struct {
	HTML     string   `json:"html,omitempty"`
	Strategy Strategy `json:"strategy,omitempty"`
	Source   Source   `json:"source,omitempty"`

	// Key is the payload key the document was found under, if any.
	// Nested keys are dotted (e.g. "result.code").
	Key string `json:"key,omitempty"`
}

// NotFound is the extraction returned when no document is recoverable.
var NotFound = Extraction{}

// Found reports whether a document was recovered.
func (e Extraction) Found() bool {
	return e.Strategy != StrategyNone
}

// HTMLExtractor recovers an HTML document from a raw generation response.
type HTMLExtractor interface {
	// ExtractHTML never fails: absence of a document is reported
	// as NotFound.
	ExtractHTML(raw RawResponse) Extraction
}

// Ensure Pipeline implements HTMLExtractor at compile time.
var _ HTMLExtractor = Pipeline{}

// Pipeline is the stateless extraction pipeline. The zero value is ready
// to use and safe for concurrent use.
type Pipeline struct{}

// ExtractHTML implements HTMLExtractor.
func (Pipeline) ExtractHTML(raw RawResponse) Extraction {
	return ExtractHTML(raw)
}

// ExtractHTML normalizes raw, then searches it for a single HTML document.
// Structured values go through the field locator, text goes through the
// streaming scanner (when framed) and the content extractor.
func ExtractHTML(raw RawResponse) Extraction {
	n := Normalize(raw)
	switch n.Kind {
	case KindText:
		return extractText(n.Text, SourceText, "")
	case KindObject:
		if p, ok := LocatePayload(n.Object); ok {
			return extractText(p.Value, SourceField, p.Key)
		}
		return extractSerialized(n.Object)
	case KindArray:
		return extractSerialized(n.Array)
	default:
		return NotFound
	}
}

// extractText runs the text flow: a streaming payload, when one can be
// located, is final; otherwise the whole text goes to the content extractor.
func extractText(s string, src Source, key string) Extraction {
	if IsStreaming(s) {
		if p, ok := ScanStream(s); ok {
			return withOrigin(ExtractContent(p.Value), SourceStream, p.Key)
		}
	}
	return withOrigin(ExtractContent(s), src, key)
}

// extractSerialized re-encodes a structured value that had no payload field
// and searches the resulting text.
func extractSerialized(v any) Extraction {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return NotFound
	}
	return withOrigin(ExtractContent(strings.TrimSpace(buf.String())), SourceSerialized, "")
}

func withOrigin(e Extraction, src Source, key string) Extraction {
	if !e.Found() {
		return NotFound
	}
	e.Source = src
	e.Key = key
	return e
}

// Kind is the shape of a normalized response.
type Kind int

// Kind constants for Normalized.
const (
	KindNone Kind = iota
	KindText
	KindObject
	KindArray
)

// Normalized is a response reduced to text, a JSON object or a JSON array.
type Normalized struct {
	Kind   Kind
	Text   string
	Object map[string]any
	Array  []any
}

// Normalize converts a raw response into a searchable shape. Strings that
// decode as a JSON object or array become structured; a decoded JSON string
// continues as text; anything else stays the original text. Decode failure
// is a normal branch, never an error.
func Normalize(raw RawResponse) Normalized {
	switch v := raw.(type) {
	case nil:
		return Normalized{}
	case string:
		return normalizeText(v)
	case []byte:
		return normalizeText(string(v))
	case json.RawMessage:
		return normalizeText(string(v))
	case map[string]any:
		return Normalized{Kind: KindObject, Object: v}
	case []any:
		return Normalized{Kind: KindArray, Array: v}
	}

	// Other Go values are round-tripped so the locator only sees generic
	// maps and slices.
	b, err := json.Marshal(raw)
	if err != nil {
		return Normalized{}
	}
	return normalizeText(string(b))
}

func normalizeText(s string) Normalized {
	text := Normalized{Kind: KindText, Text: s}

	// Only objects, arrays and strings can carry a document; skip the
	// decode attempt for everything else.
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || !strings.ContainsRune(`{["`, rune(trimmed[0])) {
		return text
	}

	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return text
	}
	switch d := v.(type) {
	case map[string]any:
		return Normalized{Kind: KindObject, Object: d}
	case []any:
		return Normalized{Kind: KindArray, Array: d}
	case string:
		return Normalized{Kind: KindText, Text: d}
	}
	return text
}
