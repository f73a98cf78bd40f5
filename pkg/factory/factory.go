package factory

import (
	"os"

	"go.uber.org/zap"

	"github.com/inercia/go-langextract/pkg/llm"
)

// ModelConfig describes which model to build. It is passed by value and the
// factory never modifies it.
type ModelConfig struct {
	// ModelID is the model identifier, e.g. "gemini-2.5-flash" or "gpt-4o"
	ModelID string `json:"model_id" yaml:"model_id"`

	// Provider names the provider explicitly, bypassing pattern matching
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`

	// ProviderKwargs are forwarded verbatim to the backend constructor
	ProviderKwargs map[string]interface{} `json:"provider_kwargs,omitempty" yaml:"provider_kwargs,omitempty"`

	// Implementation, when set, is used as the constructor and the registry is not consulted
	Implementation llm.Constructor `json:"-" yaml:"-"`

	// OutputFormat is handed to the backend untouched
	OutputFormat *llm.ResponseFormat `json:"output_format,omitempty" yaml:"-"`
}

// Factory resolves model configurations against a registry and builds backends
type Factory struct {
	registry *Registry
}

// Option configures a Factory
type Option func(*Factory)

// WithRegistry makes the factory resolve against r instead of the default registry
func WithRegistry(r *Registry) Option {
	return func(f *Factory) {
		f.registry = r
	}
}

// New creates a new model factory
func New(opts ...Option) *Factory {
	f := &Factory{registry: defaultRegistry}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Registry returns the registry the factory resolves against
func (f *Factory) Registry() *Registry {
	return f.registry
}

// Resolve returns the constructor config resolves to.
//
// An explicit Implementation wins over an explicit Provider, which wins over
// matching ModelID against the registered patterns.
func (f *Factory) Resolve(config ModelConfig) (llm.Constructor, error) {
	constructor, _, err := f.resolve(config)
	return constructor, err
}

func (f *Factory) resolve(config ModelConfig) (llm.Constructor, *ProviderDescriptor, error) {
	// Builtins must be present on every path, explicit provider names included.
	f.registry.LoadBuiltinsOnce()

	if config.Implementation != nil {
		llm.Logger().Debug("using explicit implementation", zap.String("model_id", config.ModelID))
		return config.Implementation, nil, nil
	}

	if config.Provider != "" {
		descriptor, ok := f.registry.Lookup(config.Provider)
		if !ok {
			return nil, nil, llm.NewConfigurationError(llm.CodeProviderNotFound,
				"no provider found matching %q", config.Provider)
		}
		llm.Logger().Debug("resolved provider by name",
			zap.String("provider", descriptor.Name),
			zap.String("model_id", config.ModelID))
		return descriptor.Constructor, descriptor, nil
	}

	if config.ModelID == "" {
		return nil, nil, &llm.Error{
			Code:    llm.CodeMissingModel,
			Message: "model id is required when no provider is given",
			Type:    llm.ErrorTypeConfiguration,
		}
	}

	descriptor, err := f.registry.Match(config.ModelID)
	if err != nil {
		return nil, nil, err
	}
	llm.Logger().Debug("resolved provider by model id",
		zap.String("provider", descriptor.Name),
		zap.String("model_id", config.ModelID))
	return descriptor.Constructor, descriptor, nil
}

// CreateModel loads the builtins, resolves config and instantiates the backend.
// Errors raised by the backend constructor are returned unchanged.
func (f *Factory) CreateModel(config ModelConfig) (llm.LanguageModel, error) {
	constructor, descriptor, err := f.resolve(config)
	if err != nil {
		return nil, err
	}

	kwargs := llm.Kwargs(config.ProviderKwargs).Clone()
	if descriptor != nil {
		applyEnvDefaults(kwargs, descriptor.EnvDefaults)
	}

	return constructor(llm.ProviderConfig{
		ModelID:        config.ModelID,
		Kwargs:         kwargs,
		ResponseFormat: config.OutputFormat,
	})
}

// CreateModelFromID builds a model from an id, an optional provider name and options
func (f *Factory) CreateModelFromID(modelID, provider string, kwargs map[string]interface{}) (llm.LanguageModel, error) {
	return f.CreateModel(ModelConfig{
		ModelID:        modelID,
		Provider:       provider,
		ProviderKwargs: kwargs,
	})
}

func applyEnvDefaults(kwargs llm.Kwargs, defaults map[string][]string) {
	for key, envVars := range defaults {
		if kwargs.Has(key) {
			continue
		}
		for _, envVar := range envVars {
			if value := os.Getenv(envVar); value != "" {
				kwargs[key] = value
				break
			}
		}
	}
}

// Resolve resolves config against the default registry
func Resolve(config ModelConfig) (llm.Constructor, error) {
	return New().Resolve(config)
}

// CreateModel builds a model using the default registry
func CreateModel(config ModelConfig) (llm.LanguageModel, error) {
	return New().CreateModel(config)
}

// CreateModelFromID builds a model from an id using the default registry
func CreateModelFromID(modelID, provider string, kwargs map[string]interface{}) (llm.LanguageModel, error) {
	return New().CreateModelFromID(modelID, provider, kwargs)
}
