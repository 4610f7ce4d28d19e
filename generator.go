package pagesmith

import "context"

// DefaultMaxIterations is the refinement budget sent with a request when
// the caller does not set one.
const DefaultMaxIterations = 10

// GenerateRequest describes a website to generate.
type GenerateRequest struct {
	Requirements  string `json:"requirements"`
	MaxIterations int    `json:"max_iterations"`
}

// Validate returns an error if the request contains invalid fields.
func (r *GenerateRequest) Validate() error {
	if r.Requirements == "" {
		return Errorf(EINVALID, "requirements required")
	}
	if r.MaxIterations < 0 {
		return Errorf(EINVALID, "max iterations must not be negative")
	}
	return nil
}

// WithDefaults returns a copy of r with unset fields filled in.
func (r GenerateRequest) WithDefaults() GenerateRequest {
	if r.MaxIterations == 0 {
		r.MaxIterations = DefaultMaxIterations
	}
	return r
}

// Generator sends requirements to a generation service and returns its
// reply verbatim. The reply is a RawResponse for an HTMLExtractor; no
// attempt is made to interpret it.
type Generator interface {
	// Generate returns EUNAVAILABLE when the service cannot be reached and
	// EUPSTREAM when it answers with a failure.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GenerationInstructions is the system prompt used by backends that call a
// language model directly instead of a generation service.
const GenerationInstructions = "You are an expert web developer. Build the website the user describes as a single, " +
	"self-contained HTML document with inline CSS and JavaScript. Reply with the complete document " +
	"starting with <!DOCTYPE html>, inside one ```html fenced block, and nothing else."
