package safety

import (
	"context"
	"fmt"
	"testing"

	"github.com/datar-psa/goguard/api"
)

// mockModerationProvider is a simple mock for unit tests
type mockModerationProvider struct {
	result *api.ModerationResult
	err    error
}

func (m *mockModerationProvider) Moderate(ctx context.Context, content string) (*api.ModerationResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func TestToxicity_Unit(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		categories  []api.ModerationCategory
		opts        ToxicityOptions
		value       any
		wantPassed  bool
		wantMessage string
	}{
		{
			name: "safe content passes",
			categories: []api.ModerationCategory{
				{Name: "Toxic", Confidence: 0.1},
				{Name: "Insult", Confidence: 0.05},
			},
			value:      "Have a wonderful day!",
			wantPassed: true,
		},
		{
			name: "toxic content fails",
			categories: []api.ModerationCategory{
				{Name: "Toxic", Confidence: 0.92},
				{Name: "Insult", Confidence: 0.85},
			},
			value:       "Get lost, I don't care.",
			wantPassed:  false,
			wantMessage: "Output was flagged for unsafe content: Insult, Toxic",
		},
		{
			name: "category filter ignores unselected categories",
			categories: []api.ModerationCategory{
				{Name: "Toxic", Confidence: 0.2},
				{Name: "Finance", Confidence: 0.9},
			},
			opts:       ToxicityOptions{Categories: []string{"Toxic", "Insult"}},
			value:      "Our rates start at 4.5% APR.",
			wantPassed: true,
		},
		{
			name: "custom threshold",
			categories: []api.ModerationCategory{
				{Name: "Profanity", Confidence: 0.4},
			},
			opts:        ToxicityOptions{Threshold: 0.3},
			value:       "What the heck.",
			wantPassed:  false,
			wantMessage: "Output was flagged for unsafe content: Profanity",
		},
		{
			name: "confidence exactly at threshold passes",
			categories: []api.ModerationCategory{
				{Name: "Toxic", Confidence: 0.5},
			},
			value:      "borderline",
			wantPassed: true,
		},
		{
			name:        "non-string value fails fast",
			value:       42,
			wantPassed:  false,
			wantMessage: "Input must be a string.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockModerationProvider{
				result: &api.ModerationResult{Categories: tt.categories},
			}

			validator := Toxicity(provider, tt.opts)
			result := validator.Validate(ctx, tt.value, nil)

			if result.Error != nil {
				t.Fatalf("Toxicity.Validate() unexpected error = %v", result.Error)
			}
			if result.Passed != tt.wantPassed {
				t.Errorf("Toxicity.Validate() passed = %v, want %v (message: %q)", result.Passed, tt.wantPassed, result.Message)
			}
			if result.Message != tt.wantMessage {
				t.Errorf("Toxicity.Validate() message = %q, want %q", result.Message, tt.wantMessage)
			}
			if result.Name != "Toxicity" {
				t.Errorf("Toxicity.Validate() name = %v, want 'Toxicity'", result.Name)
			}
		})
	}
}

func TestToxicity_ProviderError(t *testing.T) {
	ctx := context.Background()

	validator := Toxicity(&mockModerationProvider{err: fmt.Errorf("API error")}, ToxicityOptions{})
	result := validator.Validate(ctx, "text", nil)

	if result.Error == nil {
		t.Error("Toxicity.Validate() expected error when provider fails")
	}
	if result.Passed {
		t.Error("Toxicity.Validate() passed despite provider error")
	}
}

func TestToxicity_NilProvider(t *testing.T) {
	ctx := context.Background()

	validator := Toxicity(nil, ToxicityOptions{})
	result := validator.Validate(ctx, "text", nil)

	if result.Error == nil {
		t.Error("Toxicity.Validate() expected error when provider is nil")
	}
}
