package factory

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/inercia/go-langextract/pkg/llm"
	"github.com/inercia/go-langextract/pkg/providers/gemini"
	"github.com/inercia/go-langextract/pkg/providers/ollama"
	"github.com/inercia/go-langextract/pkg/providers/openai"
)

// Environment variables read by ModelConfigFromEnv
const (
	EnvModelID  = "LANGEXTRACT_MODEL_ID"
	EnvProvider = "LANGEXTRACT_PROVIDER"
)

// ModelConfigFromEnv picks a model configuration from the environment.
//
// An explicit LANGEXTRACT_MODEL_ID (optionally with LANGEXTRACT_PROVIDER) wins.
// Otherwise OpenAI is used when OPENAI_API_KEY is set, then Gemini when
// GEMINI_API_KEY is set, and a local Ollama model as the last resort. API keys
// are not copied into the config: the factory fills them in from the same
// variables when the model is created.
func ModelConfigFromEnv() ModelConfig {
	if modelID := os.Getenv(EnvModelID); modelID != "" {
		llm.Logger().Info("using model from environment", zap.String("model_id", modelID))
		return ModelConfig{
			ModelID:  modelID,
			Provider: os.Getenv(EnvProvider),
		}
	}

	if os.Getenv("OPENAI_API_KEY") != "" {
		model := openai.DefaultModel
		if custom := os.Getenv("OPENAI_MODEL"); custom != "" {
			model = custom
		}
		config := ModelConfig{ModelID: model, Provider: openai.ProviderName}
		if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
			config.ProviderKwargs = map[string]interface{}{llm.OptionBaseURL: baseURL}
		}
		llm.Logger().Info("using OpenAI API", zap.String("model_id", model))
		return config
	}

	if os.Getenv("GEMINI_API_KEY") != "" || os.Getenv(EnvAPIKey) != "" {
		model := gemini.DefaultModel
		if custom := os.Getenv("GEMINI_MODEL"); custom != "" {
			model = custom
		}
		llm.Logger().Info("using Gemini API", zap.String("model_id", model))
		return ModelConfig{ModelID: model, Provider: gemini.ProviderName}
	}

	llm.Logger().Info("no cloud API key found, using local Ollama",
		zap.String("model_id", ollama.DefaultModel))
	return ModelConfig{ModelID: ollama.DefaultModel, Provider: ollama.ProviderName}
}

// ParseModelConfig decodes a YAML model configuration
//
//	model_id: gemini-2.5-flash
//	provider: gemini
//	provider_kwargs:
//	  temperature: 0.2
func ParseModelConfig(data []byte) (ModelConfig, error) {
	var config ModelConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return ModelConfig{}, &llm.Error{
			Code:    "invalid_config",
			Message: fmt.Sprintf("failed to parse model configuration: %v", err),
			Type:    llm.ErrorTypeConfiguration,
			Err:     err,
		}
	}
	if config.ModelID == "" && config.Provider == "" {
		return ModelConfig{}, &llm.Error{
			Code:    llm.CodeMissingModel,
			Message: "model configuration needs a model_id or a provider",
			Type:    llm.ErrorTypeConfiguration,
		}
	}
	return config, nil
}

// LoadModelConfig reads a YAML model configuration from path
func LoadModelConfig(path string) (ModelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ModelConfig{}, fmt.Errorf("failed to read model configuration %s: %w", path, err)
	}
	return ParseModelConfig(data)
}
