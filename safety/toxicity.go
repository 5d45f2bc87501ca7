package safety

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/datar-psa/goguard/api"
)

// ToxicityOptions configures the Toxicity validator
type ToxicityOptions struct {
	// Threshold is the confidence above which a category flags the value (0.0-1.0)
	// Zero means the default of 0.5
	Threshold float64
	// Categories to check (empty = all categories reported by the provider)
	Categories []string
	// OnFail is an opaque failure-handling policy for the host framework,
	// stored but never interpreted
	OnFail any
}

// Toxicity returns a validator that fails when a moderation provider flags
// the value in any of the selected safety categories above the confidence
// threshold.
func Toxicity(provider api.ModerationProvider, opts ToxicityOptions) api.Validator {
	return &toxicityValidator{
		opts:     opts,
		provider: provider,
	}
}

type toxicityValidator struct {
	opts     ToxicityOptions
	provider api.ModerationProvider
}

func (v *toxicityValidator) Validate(ctx context.Context, value any, metadata map[string]any) api.Result {
	result := api.Result{
		Name:     "Toxicity",
		Metadata: make(map[string]any),
	}

	text, ok := value.(string)
	if !ok {
		result.Message = "Input must be a string."
		return result
	}

	if v.provider == nil {
		result.Error = fmt.Errorf("moderation provider is required")
		return result
	}

	moderationResp, err := v.provider.Moderate(ctx, text)
	if err != nil {
		result.Error = fmt.Errorf("failed to moderate content: %w", err)
		return result
	}

	threshold := v.opts.Threshold
	if threshold <= 0 {
		threshold = 0.5 // Default threshold
	}

	flaggedCategories := make(map[string]float64)
	var flaggedNames []string

	for _, category := range moderationResp.Categories {
		if len(v.opts.Categories) > 0 {
			categoryIncluded := false
			for _, included := range v.opts.Categories {
				if category.Name == included {
					categoryIncluded = true
					break
				}
			}
			if !categoryIncluded {
				continue
			}
		}

		if category.Confidence > threshold {
			flaggedCategories[category.Name] = category.Confidence
			flaggedNames = append(flaggedNames, category.Name)
		}
	}

	result.Metadata["flagged_categories"] = flaggedCategories
	result.Metadata["threshold"] = threshold
	result.Metadata["all_categories"] = moderationResp.Categories

	if len(flaggedNames) > 0 {
		sort.Strings(flaggedNames)
		result.Message = fmt.Sprintf("Output was flagged for unsafe content: %s", strings.Join(flaggedNames, ", "))
		return result
	}

	result.Passed = true
	return result
}

var _ api.Validator = (*toxicityValidator)(nil)
