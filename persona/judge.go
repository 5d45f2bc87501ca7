package persona

import (
	"context"
	"fmt"

	"github.com/datar-psa/goguard/api"
)

// AlignmentOptions configures the Alignment validator
type AlignmentOptions struct {
	// Threshold is the minimum alignment score (0.0-1.0) required to pass.
	// Zero means the default of 0.75, i.e. the judge must grade the value
	// at least D on the anchored A-E scale.
	Threshold float64
	// OnFail is an opaque failure-handling policy for the host framework,
	// stored but never interpreted.
	OnFail any
}

// Alignment returns a validator that uses an LLM judge to grade whether a
// value stays in character for the given persona description. It is the
// judge-based alternative to Consistency for cases where no embedding
// backend is available or the persona is too nuanced for vector similarity.
func Alignment(llm api.LLMGenerator, personaDescription string, opts AlignmentOptions) api.Validator {
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = 0.75
	}
	return &alignmentValidator{
		llm:         llm,
		description: personaDescription,
		threshold:   threshold,
		onFail:      opts.OnFail,
	}
}

type alignmentValidator struct {
	llm         api.LLMGenerator
	description string
	threshold   float64
	onFail      any
}

const alignmentPromptTemplate = `You are evaluating whether an AI response stays in character for a declared persona. Be deterministic and concise.

[BEGIN DATA]
[Persona]: %s
[Response]: %s
[END DATA]

Alignment anchors (use these precise anchors, not your own):
A: contradicts the persona; wrong voice, wrong attitude
B: mostly out of character; persona traits rarely visible
C: neutral; neither clearly in nor out of character
D: consistently in character; minor lapses at most
E: unmistakably in character; voice, attitude and register all match

Instructions:
- Rate alignment with one of A, B, C, D, E.
- Provide: confidence (0.0-1.0) and a short explanation (<=30 words).
`

func (v *alignmentValidator) Validate(ctx context.Context, value any, metadata map[string]any) api.Result {
	result := api.Result{
		Name:     "PersonaAlignment",
		Metadata: make(map[string]any),
	}

	text, ok := value.(string)
	if !ok {
		result.Message = "Input must be a string."
		return result
	}

	if v.llm == nil {
		result.Error = fmt.Errorf("LLM generator is required")
		return result
	}

	prompt := fmt.Sprintf(alignmentPromptTemplate, v.description, text)

	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"alignment": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"A", "B", "C", "D", "E"},
				"description": "Persona alignment rating (A-E) with anchored definitions",
			},
			"confidence":  map[string]interface{}{"type": "number"},
			"explanation": map[string]interface{}{"type": "string"},
		},
		"required": []string{"alignment"},
	}

	structuredResponse, err := v.llm.StructuredGenerate(ctx, prompt, schema)
	if err != nil {
		result.Error = fmt.Errorf("%w: %v", api.ErrLLMGenerationFailed, err)
		return result
	}

	choice, ok := structuredResponse["alignment"].(string)
	if !ok {
		result.Error = fmt.Errorf("failed to extract alignment choice from structured response")
		result.Metadata["raw_response"] = structuredResponse
		return result
	}

	choiceToScore := map[string]float64{
		"A": 0.0,
		"B": 0.25,
		"C": 0.5,
		"D": 0.75,
		"E": 1.0,
	}

	score, ok := choiceToScore[choice]
	if !ok {
		result.Error = fmt.Errorf("unexpected alignment choice %q", choice)
		result.Metadata["raw_response"] = structuredResponse
		return result
	}

	explanation := ""
	if s, ok := structuredResponse["explanation"].(string); ok {
		explanation = s
	}

	result.Metadata["alignment_choice"] = choice
	result.Metadata["alignment_score"] = score
	result.Metadata["threshold"] = v.threshold
	if c, ok := structuredResponse["confidence"].(float64); ok {
		result.Metadata["confidence"] = clamp01(c)
	}
	if explanation != "" {
		result.Metadata["explanation"] = explanation
	}

	if score >= v.threshold {
		result.Passed = true
		return result
	}

	message := fmt.Sprintf("Output does not maintain the expected persona. Alignment: %s", choice)
	if explanation != "" {
		message = fmt.Sprintf("%s (%s)", message, explanation)
	}
	result.Message = message
	return result
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var _ api.Validator = (*alignmentValidator)(nil)
