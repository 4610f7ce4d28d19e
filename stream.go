package pagesmith

import (
	"encoding/json"
	"strings"
)

// StreamMarker prefixes each record line of a streamed response.
const StreamMarker = "data:"

// StatusCompleted marks the terminal record of a streamed response.
const StatusCompleted = "completed"

// streamDone is the optional terminator line some services send.
const streamDone = "[DONE]"

// reasoningCodeKey holds reasoning followed by code in streamed results.
const reasoningCodeKey = "code"

// StreamRecord is one decoded record of a streamed response. Every field is
// optional.
type StreamRecord struct {
	Status      string
	Message     string
	Progress    float64
	HasProgress bool

	// Result is nil when absent or not a JSON object.
	Result map[string]any
}

// Completed reports whether the record is a completion record with a result.
func (r *StreamRecord) Completed() bool {
	return r.Status == StatusCompleted && r.Result != nil
}

// Payload locates the document payload in the record's result. The
// reasoning+code key is consulted first and has its preamble removed; the
// generic payload keys follow.
func (r *StreamRecord) Payload() (Payload, bool) {
	if r.Result == nil {
		return Payload{}, false
	}

	if s, ok := r.Result[reasoningCodeKey].(string); ok {
		if code := StripPreamble(s); code != "" {
			return Payload{Key: "result." + reasoningCodeKey, Value: code}, true
		}
	}

	for _, k := range payloadKeys {
		if k == reasoningCodeKey {
			continue
		}
		if s, ok := r.Result[k].(string); ok && s != "" {
			return Payload{Key: "result." + k, Value: s}, true
		}
	}

	return Payload{}, false
}

// IsStreaming reports whether any line of s begins with the stream marker.
func IsStreaming(s string) bool {
	for line := range strings.SplitSeq(s, "\n") {
		if _, ok := cutMarker(line); ok {
			return true
		}
	}
	return false
}

// ParseStreamRecord decodes one marked line. It reports false for unmarked
// lines, the terminator, and lines whose body is not a JSON object.
func ParseStreamRecord(line string) (*StreamRecord, bool) {
	body, ok := cutMarker(line)
	if !ok || body == "" || body == streamDone {
		return nil, false
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil, false
	}

	rec := &StreamRecord{}
	rec.Status, _ = fields["status"].(string)
	rec.Message, _ = fields["message"].(string)
	if p, ok := fields["progress"].(float64); ok {
		rec.Progress = p
		rec.HasProgress = true
	}
	rec.Result, _ = fields["result"].(map[string]any)
	return rec, true
}

// ScanStream finds the authoritative payload of a streamed response. The
// first completion record with a locatable payload wins immediately;
// otherwise the payload comes from the last record carrying a result, and
// there is none when that record's result holds no payload. Malformed lines
// are skipped.
func ScanStream(s string) (Payload, bool) {
	var last *StreamRecord

	for line := range strings.SplitSeq(s, "\n") {
		rec, ok := ParseStreamRecord(line)
		if !ok || rec.Result == nil {
			continue
		}
		if rec.Completed() {
			if p, ok := rec.Payload(); ok {
				return p, true
			}
		}
		last = rec
	}

	if last == nil {
		return Payload{}, false
	}
	return last.Payload()
}

func cutMarker(line string) (string, bool) {
	line = strings.TrimLeft(line, " \t")
	rest, ok := strings.CutPrefix(line, StreamMarker)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
