package persona

import (
	"context"
	"strings"
	"testing"

	"github.com/datar-psa/goguard/internal/testutils"
)

// TestConsistency_Integration tests the Consistency validator with real Gemini embeddings
// This test requires valid Google Cloud credentials and uses hypert to cache requests
func TestConsistency_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	embedder := testutils.NewGeminiEmbedder(t, testutils.DefaultGeminiTestConfig("persona"), "text-embedding-005")

	validator, err := NewConsistency(ctx, embedder, "a cheerful customer support agent", ConsistencyOptions{Threshold: 0.7})
	if err != nil {
		t.Fatalf("NewConsistency() unexpected error = %v", err)
	}

	tests := []struct {
		name       string
		value      string
		wantPassed bool
	}{
		{
			name:       "on-persona reply passes",
			value:      "I'm so happy to help you today!",
			wantPassed: true,
		},
		{
			name:       "identical to persona description passes",
			value:      "a cheerful customer support agent",
			wantPassed: true,
		},
		{
			name:       "hostile reply fails",
			value:      "Get lost, I don't care.",
			wantPassed: false,
		},
		{
			name:       "unrelated topic fails",
			value:      "The mitochondria is the powerhouse of the cell.",
			wantPassed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.Validate(ctx, tt.value, nil)

			if result.Error != nil {
				t.Fatalf("Consistency.Validate() unexpected error = %v", result.Error)
			}

			if result.Passed != tt.wantPassed {
				t.Errorf("Consistency.Validate() passed = %v, want %v", result.Passed, tt.wantPassed)
				t.Logf("Similarity: %v", result.Metadata["similarity"])
			}

			if !tt.wantPassed && !strings.Contains(result.Message, "Similarity score:") {
				t.Errorf("Consistency.Validate() fail message = %q, want similarity score in message", result.Message)
			}
		})
	}
}
