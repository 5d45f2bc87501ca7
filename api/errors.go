package api

import "errors"

var (
	// ErrEmbeddingFailed is returned when the embedding backend fails
	ErrEmbeddingFailed = errors.New("embedding generation failed")
	// ErrLLMGenerationFailed is returned when LLM generation fails
	ErrLLMGenerationFailed = errors.New("LLM generation failed")
)
