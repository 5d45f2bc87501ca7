package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/datar-psa/goguard/api"
)

// Generator wraps a genai.Client to implement the api.LLMGenerator interface
type Generator struct {
	client    *genai.Client
	modelName string
}

// NewGenerator creates a new Gemini generator
// client: genai.Client from google.golang.org/genai
// modelName: the model to use (e.g., "gemini-2.5-flash")
func NewGenerator(client *genai.Client, modelName string) *Generator {
	return &Generator{
		client:    client,
		modelName: modelName,
	}
}

// Generate generates free-form text based on the provided prompt
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	content := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.modelName,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{},
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no parts in response")
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// StructuredGenerate implements api.LLMGenerator.StructuredGenerate
// The schema is passed through as a JSON schema constraint on the response
func (g *Generator) StructuredGenerate(ctx context.Context, prompt string, schema map[string]interface{}) (map[string]interface{}, error) {
	content := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.modelName,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			ResponseMIMEType:   "application/json",
			ResponseJsonSchema: schema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate structured content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates returned")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no parts in response")
	}

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(resp.Candidates[0].Content.Parts[0].Text), &result); err != nil {
		return nil, fmt.Errorf("failed to parse structured response: %w", err)
	}

	return result, nil
}

// Verify that Generator implements api.LLMGenerator
var _ api.LLMGenerator = (*Generator)(nil)
