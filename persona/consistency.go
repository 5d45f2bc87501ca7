package persona

import (
	"context"
	"fmt"
	"math"

	"github.com/datar-psa/goguard/api"
)

// DefaultThreshold is the minimum cosine similarity required to pass
// when ConsistencyOptions.Threshold is left unset.
const DefaultThreshold = 0.7

// ConsistencyOptions configures the Consistency validator
type ConsistencyOptions struct {
	// Threshold is the minimum cosine similarity between the persona
	// description and the candidate required to pass. Zero means
	// DefaultThreshold. The value is not clamped: a threshold above 1
	// makes the check unsatisfiable, a negative one trivially satisfied.
	Threshold float64
	// OnFail is an opaque failure-handling policy for the host framework.
	// The validator stores it and exposes it via OnFail(); it never
	// influences the verdict.
	OnFail any
}

// Consistency validates that a value maintains a consistent persona.
// It embeds the persona description once at construction and compares each
// candidate against that cached embedding using cosine similarity.
type Consistency struct {
	description      string
	threshold        float64
	onFail           any
	embedder         api.Embedder
	personaEmbedding []float64
}

// NewConsistency creates a persona consistency validator.
// The persona description is embedded eagerly, so this is the one expensive
// call; construct once and reuse across checks. An embedding failure here is
// fatal since the validator has no fallback strategy.
func NewConsistency(ctx context.Context, embedder api.Embedder, personaDescription string, opts ConsistencyOptions) (*Consistency, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}

	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	personaEmbedding, err := embedder.Embed(ctx, personaDescription)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to embed persona description: %v", api.ErrEmbeddingFailed, err)
	}

	return &Consistency{
		description:      personaDescription,
		threshold:        threshold,
		onFail:           opts.OnFail,
		embedder:         embedder,
		personaEmbedding: personaEmbedding,
	}, nil
}

// Validate implements api.Validator.
// Non-string values fail fast with a fixed message and no embedding call.
// String values are embedded and compared against the cached persona
// embedding; a similarity greater than or equal to the threshold passes.
// The metadata mapping is accepted for pipeline compatibility and does not
// influence the verdict.
func (c *Consistency) Validate(ctx context.Context, value any, metadata map[string]any) api.Result {
	result := api.Result{
		Name:     "PersonaConsistency",
		Metadata: make(map[string]any),
	}

	text, ok := value.(string)
	if !ok {
		result.Message = "Input must be a string."
		return result
	}

	candidateEmbedding, err := c.embedder.Embed(ctx, text)
	if err != nil {
		result.Error = fmt.Errorf("%w: failed to embed candidate: %v", api.ErrEmbeddingFailed, err)
		return result
	}

	similarity := cosineSimilarity(c.personaEmbedding, candidateEmbedding)

	result.Metadata["similarity"] = similarity
	result.Metadata["threshold"] = c.threshold
	result.Metadata["embedding_dim"] = len(candidateEmbedding)

	if similarity >= c.threshold {
		result.Passed = true
		return result
	}

	result.Message = fmt.Sprintf("Output does not maintain the expected persona. Similarity score: %.2f", similarity)
	return result
}

// Description returns the persona description supplied at construction.
func (c *Consistency) Description() string { return c.description }

// Threshold returns the effective similarity threshold.
func (c *Consistency) Threshold() float64 { return c.threshold }

// OnFail returns the opaque failure policy supplied at construction.
func (c *Consistency) OnFail() any { return c.onFail }

// cosineSimilarity computes the cosine similarity between two vectors
// Returns a value between -1 and 1, where 1 means identical direction
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	normA = math.Sqrt(normA)
	normB = math.Sqrt(normB)

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (normA * normB)
}

// Verify that Consistency implements api.Validator
var _ api.Validator = (*Consistency)(nil)
