package factory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inercia/go-langextract/pkg/llm"
	"github.com/inercia/go-langextract/pkg/providers/mock"
)

func clearAPIKeys(t *testing.T) {
	t.Helper()
	for _, v := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY", "DEEPSEEK_API_KEY", "OPENROUTER_API_KEY", EnvAPIKey} {
		t.Setenv(v, "")
	}
}

func TestCreateModelByPattern(t *testing.T) {
	f := New(WithRegistry(NewRegistry(Builtins()...)))

	model, err := f.CreateModel(ModelConfig{ModelID: "mock-model"})
	require.NoError(t, err)

	info := model.GetModelInfo()
	assert.Equal(t, "mock", info.Provider)
	assert.Equal(t, "mock-model", info.Name)

	out, err := model.Infer(context.Background(), []string{"prompt"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, mock.DefaultResponse, out[0][0].Output)
}

func TestCreateModelExplicitProviderOnFreshRegistry(t *testing.T) {
	clearAPIKeys(t)

	r := NewRegistry(Builtins()...)
	r.Clear()
	f := New(WithRegistry(r))

	t.Run("with api key", func(t *testing.T) {
		model, err := f.CreateModel(ModelConfig{
			ModelID:        "gpt-4o",
			Provider:       "openai",
			ProviderKwargs: map[string]interface{}{llm.OptionAPIKey: "test-key"},
		})
		require.NoError(t, err)
		assert.Equal(t, "openai", model.GetModelInfo().Provider)
	})

	t.Run("without api key", func(t *testing.T) {
		_, err := f.CreateModel(ModelConfig{ModelID: "gpt-4o", Provider: "openai"})
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "no provider found")
		assert.False(t, errors.Is(err, llm.ErrProviderNotFound))

		var llmErr *llm.Error
		require.ErrorAs(t, err, &llmErr)
		assert.Equal(t, llm.CodeMissingAPIKey, llmErr.Code)
		assert.Equal(t, llm.ErrorTypeAuthentication, llmErr.Type)
	})
}

func TestResolve(t *testing.T) {
	r := NewRegistry(Builtins()...)
	r.MustRegister("acme", []string{`^acme-`}, stubConstructor("acme"), WithAliases("wile"))
	f := New(WithRegistry(r))

	explicit := stubConstructor("explicit")

	tests := []struct {
		name         string
		config       ModelConfig
		wantProvider string
		wantErr      error
		wantCode     string
	}{
		{
			name:         "implementation wins over provider and model id",
			config:       ModelConfig{ModelID: "gemini-2.5-flash", Provider: "acme", Implementation: explicit},
			wantProvider: "explicit",
		},
		{
			name:         "provider wins over model id",
			config:       ModelConfig{ModelID: "gemini-2.5-flash", Provider: "acme"},
			wantProvider: "acme",
		},
		{
			name:         "provider alias",
			config:       ModelConfig{ModelID: "whatever", Provider: "WILE"},
			wantProvider: "acme",
		},
		{
			name:         "model id pattern",
			config:       ModelConfig{ModelID: "acme-rocket"},
			wantProvider: "acme",
		},
		{
			name:         "builtin alias",
			config:       ModelConfig{ModelID: "anything", Provider: "mocked"},
			wantProvider: "mock",
		},
		{
			name:    "unknown provider",
			config:  ModelConfig{ModelID: "gemini-2.5-flash", Provider: "nonexistent"},
			wantErr: llm.ErrProviderNotFound,
		},
		{
			name:    "unknown model id",
			config:  ModelConfig{ModelID: "unknown-model"},
			wantErr: llm.ErrProviderNotFound,
		},
		{
			name:     "empty config",
			config:   ModelConfig{},
			wantCode: llm.CodeMissingModel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			constructor, err := f.Resolve(tt.config)
			switch {
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.True(t, llm.IsConfigurationError(err))
				assert.Contains(t, err.Error(), "no provider found matching")
				return
			case tt.wantCode != "":
				var llmErr *llm.Error
				require.ErrorAs(t, err, &llmErr)
				assert.Equal(t, tt.wantCode, llmErr.Code)
				return
			}

			require.NoError(t, err)
			model, err := constructor(llm.ProviderConfig{ModelID: tt.config.ModelID})
			require.NoError(t, err)
			assert.Equal(t, tt.wantProvider, model.GetModelInfo().Provider)
		})
	}
}

func TestCreateModelAmbiguous(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("left", []string{`^twin-`}, stubConstructor("left"))
	r.MustRegister("right", []string{`^twin-`}, stubConstructor("right"))
	f := New(WithRegistry(r))

	_, err := f.CreateModel(ModelConfig{ModelID: "twin-1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrAmbiguousProvider))

	model, err := f.CreateModel(ModelConfig{ModelID: "twin-1", Provider: "right"})
	require.NoError(t, err)
	assert.Equal(t, "right", model.GetModelInfo().Provider)
}

func TestCreateModelPropagatesConstructorErrors(t *testing.T) {
	boom := &llm.Error{Code: "boom", Message: "constructor failed", Type: llm.ErrorTypeInternal}
	r := NewRegistry()
	r.MustRegister("broken", []string{`^broken`}, func(llm.ProviderConfig) (llm.LanguageModel, error) {
		return nil, boom
	})

	_, err := New(WithRegistry(r)).CreateModel(ModelConfig{ModelID: "broken-1"})
	assert.Same(t, boom, err)
}

func TestCreateModelForwardsConfig(t *testing.T) {
	var got llm.ProviderConfig
	capture := func(config llm.ProviderConfig) (llm.LanguageModel, error) {
		got = config
		return &stubModel{provider: "capture", config: config}, nil
	}

	r := NewRegistry()
	r.MustRegister("capture", []string{`^capture`}, capture)
	f := New(WithRegistry(r))

	kwargs := map[string]interface{}{"temperature": 0.3, "custom": []string{"a"}}
	format := llm.NewJSONResponseFormat()

	_, err := f.CreateModel(ModelConfig{
		ModelID:        "capture-1",
		ProviderKwargs: kwargs,
		OutputFormat:   format,
	})
	require.NoError(t, err)

	assert.Equal(t, "capture-1", got.ModelID)
	assert.Equal(t, llm.Kwargs(kwargs), got.Kwargs)
	assert.Same(t, format, got.ResponseFormat)

	got.Kwargs["injected"] = true
	assert.NotContains(t, kwargs, "injected")
}

func TestCreateModelEnvDefaults(t *testing.T) {
	var got llm.ProviderConfig
	capture := func(config llm.ProviderConfig) (llm.LanguageModel, error) {
		got = config
		return &stubModel{provider: "capture", config: config}, nil
	}

	r := NewRegistry()
	r.MustRegister("capture", []string{`^capture`}, capture,
		WithEnvDefault(llm.OptionAPIKey, "CAPTURE_API_KEY", "CAPTURE_FALLBACK_KEY"))
	f := New(WithRegistry(r))

	t.Run("first variable", func(t *testing.T) {
		t.Setenv("CAPTURE_API_KEY", "primary")
		t.Setenv("CAPTURE_FALLBACK_KEY", "fallback")
		_, err := f.CreateModel(ModelConfig{ModelID: "capture-1"})
		require.NoError(t, err)
		assert.Equal(t, "primary", got.Kwargs[llm.OptionAPIKey])
	})

	t.Run("fallback variable", func(t *testing.T) {
		t.Setenv("CAPTURE_API_KEY", "")
		t.Setenv("CAPTURE_FALLBACK_KEY", "fallback")
		_, err := f.CreateModel(ModelConfig{ModelID: "capture-1"})
		require.NoError(t, err)
		assert.Equal(t, "fallback", got.Kwargs[llm.OptionAPIKey])
	})

	t.Run("explicit value wins", func(t *testing.T) {
		t.Setenv("CAPTURE_API_KEY", "primary")
		kwargs := map[string]interface{}{llm.OptionAPIKey: "explicit"}
		_, err := f.CreateModel(ModelConfig{ModelID: "capture-1", ProviderKwargs: kwargs})
		require.NoError(t, err)
		assert.Equal(t, "explicit", got.Kwargs[llm.OptionAPIKey])
	})

	t.Run("implementation skips defaults", func(t *testing.T) {
		t.Setenv("CAPTURE_API_KEY", "primary")
		_, err := f.CreateModel(ModelConfig{ModelID: "capture-1", Implementation: capture})
		require.NoError(t, err)
		assert.NotContains(t, got.Kwargs, llm.OptionAPIKey)
	})
}

func TestCreateModelFromID(t *testing.T) {
	f := New(WithRegistry(NewRegistry(Builtins()...)))

	model, err := f.CreateModelFromID("mock-1", "", map[string]interface{}{
		mock.OptionResponses: []interface{}{"one", "two"},
	})
	require.NoError(t, err)

	out, err := model.Infer(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "one", out[0][0].Output)
	assert.Equal(t, "two", out[1][0].Output)
	assert.Equal(t, "one", out[2][0].Output)
}
