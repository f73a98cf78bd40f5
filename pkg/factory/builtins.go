package factory

import (
	"go.uber.org/zap"

	"github.com/inercia/go-langextract/pkg/llm"
	"github.com/inercia/go-langextract/pkg/providers/bedrock"
	"github.com/inercia/go-langextract/pkg/providers/deepseek"
	"github.com/inercia/go-langextract/pkg/providers/gemini"
	"github.com/inercia/go-langextract/pkg/providers/mock"
	"github.com/inercia/go-langextract/pkg/providers/ollama"
	"github.com/inercia/go-langextract/pkg/providers/openai"
	"github.com/inercia/go-langextract/pkg/providers/openrouter"
)

// EnvAPIKey is consulted for the API key of the Gemini and OpenAI providers
// when no provider-specific variable is set
const EnvAPIKey = "LANGEXTRACT_API_KEY"

// Builtin is a provider shipped with the library. Builtins are registered
// lazily by LoadBuiltinsOnce.
type Builtin struct {
	Name        string
	Patterns    []string
	Constructor llm.Constructor
	Options     []RegisterOption
}

// Builtins returns the providers shipped with the library
func Builtins() []Builtin {
	return []Builtin{
		{
			Name:        gemini.ProviderName,
			Patterns:    gemini.Patterns,
			Constructor: construct(gemini.NewModel),
			Options: []RegisterOption{
				WithPriority(10),
				WithEnvDefault(llm.OptionAPIKey, "GEMINI_API_KEY", EnvAPIKey),
			},
		},
		{
			Name:        openai.ProviderName,
			Patterns:    openai.Patterns,
			Constructor: construct(openai.NewModel),
			Options: []RegisterOption{
				WithPriority(10),
				WithEnvDefault(llm.OptionAPIKey, "OPENAI_API_KEY", EnvAPIKey),
			},
		},
		{
			Name:        ollama.ProviderName,
			Patterns:    ollama.Patterns,
			Constructor: construct(ollama.NewModel),
			Options: []RegisterOption{
				WithPriority(10),
				WithEnvDefault(llm.OptionBaseURL, "OLLAMA_BASE_URL"),
			},
		},
		{
			Name:        deepseek.ProviderName,
			Patterns:    deepseek.Patterns,
			Constructor: construct(deepseek.NewModel),
			Options: []RegisterOption{
				WithPriority(10),
				WithEnvDefault(llm.OptionAPIKey, "DEEPSEEK_API_KEY"),
			},
		},
		{
			Name:        openrouter.ProviderName,
			Patterns:    openrouter.Patterns,
			Constructor: construct(openrouter.NewModel),
			Options: []RegisterOption{
				WithPriority(5),
				WithEnvDefault(llm.OptionAPIKey, "OPENROUTER_API_KEY"),
			},
		},
		{
			Name:        bedrock.ProviderName,
			Patterns:    bedrock.Patterns,
			Constructor: construct(bedrock.NewModel),
			Options: []RegisterOption{
				WithPriority(10),
				WithEnvDefault(bedrock.OptionRegion, "AWS_REGION", "AWS_DEFAULT_REGION"),
			},
		},
		{
			Name:        mock.ProviderName,
			Patterns:    mock.Patterns,
			Constructor: construct(mock.NewModel),
			Options:     []RegisterOption{WithAliases("mocked")},
		},
	}
}

// construct adapts a typed backend constructor so a failed construction yields
// a nil interface instead of a typed nil
func construct[M llm.LanguageModel](newModel func(llm.ProviderConfig) (M, error)) llm.Constructor {
	return func(config llm.ProviderConfig) (llm.LanguageModel, error) {
		model, err := newModel(config)
		if err != nil {
			return nil, err
		}
		return model, nil
	}
}

// LoadBuiltinsOnce registers the builtin providers the first time it is called
// after creation or after Clear. Later calls return immediately. A builtin
// never replaces a provider that was registered under the same name before
// loading happened.
func (r *Registry) LoadBuiltinsOnce() {
	r.mu.RLock()
	loaded := r.builtinsLoaded
	r.mu.RUnlock()
	if loaded {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.builtinsLoaded {
		return
	}

	registered := 0
	for _, b := range r.builtins {
		if _, exists := r.providers[normalize(b.Name)]; exists {
			llm.Logger().Debug("keeping existing registration over builtin", zap.String("provider", b.Name))
			continue
		}
		descriptor, err := newDescriptor(b.Name, b.Patterns, b.Constructor, b.Options...)
		if err != nil {
			llm.Logger().Error("skipping invalid builtin provider", zap.String("provider", b.Name), zap.Error(err))
			continue
		}
		r.store(descriptor)
		registered++
	}
	r.builtinsLoaded = true
	llm.Logger().Debug("builtin providers loaded", zap.Int("count", registered))
}

// BuiltinsLoaded reports whether the builtins have been loaded since creation or the last Clear
func (r *Registry) BuiltinsLoaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.builtinsLoaded
}

// LoadBuiltinsOnce loads the builtin providers into the default registry
func LoadBuiltinsOnce() {
	defaultRegistry.LoadBuiltinsOnce()
}
