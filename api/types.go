package api

import "context"

// Embedder generates vector embeddings for text
type Embedder interface {
	// Embed generates an embedding vector for the given text
	// Returns a normalized vector (length = 1) suitable for cosine similarity
	Embed(ctx context.Context, text string) ([]float64, error)
}

// LLMGenerator is an interface for generating text using an LLM
// This interface must be implemented by library consumers
// A Gemini implementation is provided in the gemini subpackage
type LLMGenerator interface {
	// StructuredGenerate generates structured data based on the provided prompt and JSON schema
	// schema must be a valid JSON schema (map[string]interface{})
	// Returns the generated data as a map[string]interface{} or an error
	StructuredGenerate(ctx context.Context, prompt string, schema map[string]interface{}) (map[string]interface{}, error)
}

// ModerationCategories contains all supported moderation category names
// These are developer-friendly names that map to Google Cloud Natural Language API categories
var ModerationCategories []string = []string{
	"Toxic",
	"Derogatory",
	"Violent",
	"Sexual",
	"Insult",
	"Profanity",
	"DeathHarmTragedy",
	"FirearmsWeapons",
	"PublicSafety",
	"Health",
	"ReligionBelief",
	"IllicitDrugs",
	"WarConflict",
	"Finance",
	"Politics",
	"Legal",
}

// ModerationCategory represents a safety category with confidence score
type ModerationCategory struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// ModerationResult represents the result of content moderation
type ModerationResult struct {
	Categories []ModerationCategory `json:"categories"`
}

// ModerationProvider is an interface for content moderation
// This interface must be implemented by library consumers
// A Google Cloud Natural Language implementation is provided in the gemini subpackage
type ModerationProvider interface {
	// Moderate analyzes content for safety and returns moderation results
	// Returns the moderation result or an error
	Moderate(ctx context.Context, content string) (*ModerationResult, error)
}

// Result represents the outcome of one validation
type Result struct {
	// Name identifies the validator that produced this result
	Name string
	// Passed reports whether the value satisfied the validator
	Passed bool
	// Message is a human-readable explanation; empty when Passed is true
	Message string
	// Metadata contains additional information about the validation process
	Metadata map[string]any
	// Error contains any error that occurred during validation, such as an
	// embedding backend failure. A Result with a non-nil Error is neither a
	// pass nor a designed fail; the host pipeline decides how to surface it.
	Error error
}

// Validator checks a generated value against a policy
//
// Conventions:
// - value:    the candidate under evaluation, typically a string produced by a model
// - metadata: free-form context supplied by the host pipeline; validators may
//   surface it in the Result but must not let it influence the verdict
type Validator interface {
	// Validate evaluates the value and returns a pass/fail result
	Validate(ctx context.Context, value any, metadata map[string]any) Result
}
