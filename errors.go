package goguard

import (
	"github.com/datar-psa/goguard/api"
)

var (
	// ErrEmbeddingFailed is returned when the embedding backend fails
	ErrEmbeddingFailed = api.ErrEmbeddingFailed
	// ErrLLMGenerationFailed is returned when LLM generation fails
	ErrLLMGenerationFailed = api.ErrLLMGenerationFailed
)
