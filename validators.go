package goguard

import (
	"context"

	language "cloud.google.com/go/language/apiv1"
	"google.golang.org/genai"

	"github.com/datar-psa/goguard/api"
	"github.com/datar-psa/goguard/gemini"
	"github.com/datar-psa/goguard/heuristic"
	"github.com/datar-psa/goguard/persona"
	"github.com/datar-psa/goguard/safety"
)

// Persona wraps an embedder and exposes convenient constructors for
// embedding-based persona validators.
type Persona struct{ embedder api.Embedder }

// PersonaOptions configures Persona creation
type PersonaOptions struct {
	embedder api.Embedder
}

// WithEmbedder sets the embedder for persona validators
func WithEmbedder(embedder api.Embedder) func(*PersonaOptions) {
	return func(opts *PersonaOptions) {
		opts.embedder = embedder
	}
}

// NewPersona creates a new Persona wrapper using functional options.
func NewPersona(opts ...func(*PersonaOptions)) *Persona {
	options := &PersonaOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return &Persona{embedder: options.embedder}
}

// GeminiOptions configures Gemini-backed wrapper creation
type GeminiOptions struct {
	genaiClient *genai.Client
	modelName   string
	langClient  *language.Client
}

// WithGenaiClient sets the Gemini client
func WithGenaiClient(client *genai.Client) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.genaiClient = client
	}
}

// WithModelName sets the model name
func WithModelName(modelName string) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.modelName = modelName
	}
}

// WithLanguageClient sets the Google Cloud Language client for moderation
func WithLanguageClient(langClient *language.Client) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.langClient = langClient
	}
}

// NewGeminiPersona creates a Persona using a Gemini client and embedding model name.
// Example model: "text-embedding-005".
func NewGeminiPersona(opts ...func(*GeminiOptions)) *Persona {
	options := &GeminiOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var personaOptions []func(*PersonaOptions)

	// Only add embedder if genaiClient and modelName are provided
	if options.genaiClient != nil && options.modelName != "" {
		personaOptions = append(personaOptions, WithEmbedder(gemini.NewEmbedder(options.genaiClient, options.modelName)))
	}

	return NewPersona(personaOptions...)
}

type ConsistencyOptions = persona.ConsistencyOptions

// Consistency returns a validator that checks values against the persona
// description using embedding cosine similarity. The description is embedded
// eagerly, so construction is the one expensive call.
func (p *Persona) Consistency(ctx context.Context, personaDescription string, opts ConsistencyOptions) (api.Validator, error) {
	return persona.NewConsistency(ctx, p.embedder, personaDescription, opts)
}

// Judge wraps an LLM generator and a moderation provider and exposes
// convenient constructors for judge-based validators.
type Judge struct {
	llm        api.LLMGenerator
	moderation api.ModerationProvider
}

// JudgeOptions configures Judge creation
type JudgeOptions struct {
	llm        api.LLMGenerator
	moderation api.ModerationProvider
}

// WithLLMGenerator sets the LLM generator for the judge
func WithLLMGenerator(llm api.LLMGenerator) func(*JudgeOptions) {
	return func(opts *JudgeOptions) {
		opts.llm = llm
	}
}

// WithModerationProvider sets the moderation provider for the judge
func WithModerationProvider(provider api.ModerationProvider) func(*JudgeOptions) {
	return func(opts *JudgeOptions) {
		opts.moderation = provider
	}
}

// NewJudge creates a new Judge wrapper using functional options.
func NewJudge(opts ...func(*JudgeOptions)) *Judge {
	options := &JudgeOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return &Judge{
		llm:        options.llm,
		moderation: options.moderation,
	}
}

// NewGeminiJudge creates a Judge using Gemini client and model name.
// Example model: "publishers/google/models/gemini-2.5-flash".
func NewGeminiJudge(opts ...func(*GeminiOptions)) *Judge {
	options := &GeminiOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var judgeOptions []func(*JudgeOptions)

	// Only add LLM generator if genaiClient is provided
	if options.genaiClient != nil && options.modelName != "" {
		judgeOptions = append(judgeOptions, WithLLMGenerator(gemini.NewGenerator(options.genaiClient, options.modelName)))
	}

	// Only add moderation provider if langClient is provided
	if options.langClient != nil {
		judgeOptions = append(judgeOptions, WithModerationProvider(gemini.NewGoogleLanguageProvider(options.langClient)))
	}

	return NewJudge(judgeOptions...)
}

type AlignmentOptions = persona.AlignmentOptions

// PersonaAlignment returns a validator that uses the judge LLM to grade
// persona alignment on an anchored scale.
func (j *Judge) PersonaAlignment(personaDescription string, opts AlignmentOptions) api.Validator {
	return persona.Alignment(j.llm, personaDescription, opts)
}

type ToxicityOptions = safety.ToxicityOptions

// Toxicity returns a validator that checks content safety using a moderation provider.
func (j *Judge) Toxicity(opts ToxicityOptions) api.Validator {
	return safety.Toxicity(j.moderation, opts)
}

// Heuristic exposes convenient constructors for heuristic validators.
type Heuristic struct{}

// NewHeuristic creates a new Heuristic.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

type RegexMatchOptions = heuristic.RegexMatchOptions

// RegexMatch returns a validator that checks the value against a regular expression.
func (h *Heuristic) RegexMatch(pattern string, opts RegexMatchOptions) (api.Validator, error) {
	return heuristic.RegexMatch(pattern, opts)
}
