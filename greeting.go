package pagesmith

import "strings"

// greetings are the openers answered without calling the generation service.
var greetings = []string{
	"hello", "hi", "hey", "greetings",
	"good morning", "good afternoon", "good evening",
}

// GreetingResponses are the canned replies to a greeting.
var GreetingResponses = []string{
	"Hello there! I'm here to help you create amazing websites. Tell me what kind of website you'd like to build!",
	"Hi! I'm your AI website builder assistant. What website project can I help you with today?",
	"Hey! Ready to build something great? Just describe the website you have in mind and I'll create it for you.",
	"Greetings! I can help you generate HTML websites based on your descriptions. What would you like to create?",
}

// IsGreeting reports whether msg is a greeting: a known opener on its own
// or followed by a space or comma. Case and surrounding whitespace are
// ignored.
func IsGreeting(msg string) bool {
	msg = strings.ToLower(strings.TrimSpace(msg))
	for _, g := range greetings {
		if msg == g || strings.HasPrefix(msg, g+" ") || strings.HasPrefix(msg, g+",") {
			return true
		}
	}
	return false
}

// GreetingResponse picks a canned reply. pick receives the number of
// replies and returns an index; out-of-range indexes wrap.
func GreetingResponse(pick func(n int) int) string {
	n := len(GreetingResponses)
	i := 0
	if pick != nil {
		i = pick(n) % n
		if i < 0 {
			i += n
		}
	}
	return GreetingResponses[i]
}
