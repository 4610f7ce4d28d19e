package pagesmith

// payloadKeys lists the keys a structured response may carry its document
// under, highest priority first.
var payloadKeys = [...]string{"html", "code", "result", "content", "output", "response"}

// nestedKeys lists the keys searched one level down when no top-level
// payload key matches.
var nestedKeys = [...]string{"result", "data", "output", "response"}

// PayloadKeys returns the payload key priority list.
func PayloadKeys() []string {
	return append([]string(nil), payloadKeys[:]...)
}

// NestedKeys returns the keys the locator descends into.
func NestedKeys() []string {
	return append([]string(nil), nestedKeys[:]...)
}

// Payload is a non-empty string found under a named key.
type Payload struct {
	Key   string
	Value string
}

// LocatePayload returns the first payload key (in priority order) holding a
// non-empty string. If no top-level key matches, it descends exactly one
// level into the nested keys, in order. Later keys are never consulted once
// one matches.
func LocatePayload(obj map[string]any) (Payload, bool) {
	if p, ok := lookupPayload(obj, payloadKeys[:]); ok {
		return p, true
	}

	for _, k := range nestedKeys {
		nested, ok := obj[k].(map[string]any)
		if !ok {
			continue
		}
		if p, ok := lookupPayload(nested, payloadKeys[:]); ok {
			p.Key = k + "." + p.Key
			return p, true
		}
	}

	return Payload{}, false
}

func lookupPayload(obj map[string]any, keys []string) (Payload, bool) {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && s != "" {
			return Payload{Key: k, Value: s}, true
		}
	}
	return Payload{}, false
}
