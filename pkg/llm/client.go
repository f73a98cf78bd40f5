// Language model interfaces shared by all backends
package llm

import "context"

// ScoredOutput is a single candidate produced by a backend for one prompt
type ScoredOutput struct {
	Score  *float64 `json:"score,omitempty"`
	Output string   `json:"output"`
}

// LanguageModel defines the interface every backend returned by the factory implements
type LanguageModel interface {
	// Infer runs one inference per prompt and returns the candidates for each
	// prompt, in the same order as the prompts.
	Infer(ctx context.Context, prompts []string) ([][]ScoredOutput, error)

	// GetModelInfo returns information about the model being used
	GetModelInfo() ModelInfo
}

// Constructor builds a backend from a resolved provider configuration.
// Errors returned here are construction failures (missing credentials,
// malformed options) and are passed to the caller unchanged.
type Constructor func(config ProviderConfig) (LanguageModel, error)

// ScoredText wraps text as a single full-confidence candidate
func ScoredText(text string) []ScoredOutput {
	score := 1.0
	return []ScoredOutput{{Score: &score, Output: text}}
}
