package heuristic

import (
	"context"
	"fmt"
	"regexp"

	"github.com/datar-psa/goguard/api"
)

// RegexMatchOptions configures the RegexMatch validator
type RegexMatchOptions struct {
	// MatchFull requires the pattern to match the entire value,
	// not just a substring
	MatchFull bool
	// OnFail is an opaque failure-handling policy for the host framework,
	// stored but never interpreted
	OnFail any
}

// RegexMatch returns a validator that checks the value against a regular
// expression. The pattern is compiled once at construction.
func RegexMatch(pattern string, opts RegexMatchOptions) (api.Validator, error) {
	if opts.MatchFull {
		pattern = "^(?:" + pattern + ")$"
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return &regexMatchValidator{opts: opts, re: re}, nil
}

type regexMatchValidator struct {
	opts RegexMatchOptions
	re   *regexp.Regexp
}

func (v *regexMatchValidator) Validate(ctx context.Context, value any, metadata map[string]any) api.Result {
	result := api.Result{
		Name:     "RegexMatch",
		Metadata: make(map[string]any),
	}

	text, ok := value.(string)
	if !ok {
		result.Message = "Input must be a string."
		return result
	}

	result.Metadata["pattern"] = v.re.String()
	result.Metadata["match_full"] = v.opts.MatchFull
	result.Metadata["value_length"] = len(text)

	if v.re.MatchString(text) {
		result.Passed = true
		return result
	}

	result.Message = fmt.Sprintf("Output does not match the expected pattern: %s", v.re.String())
	return result
}

var _ api.Validator = (*regexMatchValidator)(nil)
