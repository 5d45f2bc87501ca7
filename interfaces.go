package goguard

import (
	"github.com/datar-psa/goguard/api"
)

type Validator = api.Validator
type Result = api.Result
type Embedder = api.Embedder
type LLMGenerator = api.LLMGenerator
type ModerationProvider = api.ModerationProvider
type ModerationCategory = api.ModerationCategory
type ModerationResult = api.ModerationResult

var ModerationCategories = api.ModerationCategories
