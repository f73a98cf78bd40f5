package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inercia/go-langextract/pkg/llm"
)

func TestNewModel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		config    llm.ProviderConfig
		wantModel string
		wantCode  string
	}{
		{
			name:      "api key",
			config:    llm.ProviderConfig{ModelID: "gemini-2.5-flash", Kwargs: llm.Kwargs{llm.OptionAPIKey: "test-key"}},
			wantModel: "gemini-2.5-flash",
		},
		{
			name:      "default model",
			config:    llm.ProviderConfig{Kwargs: llm.Kwargs{llm.OptionAPIKey: "test-key", llm.OptionTemperature: 0.5}},
			wantModel: DefaultModel,
		},
		{
			name:     "missing api key",
			config:   llm.ProviderConfig{ModelID: "gemini-2.5-flash"},
			wantCode: llm.CodeMissingAPIKey,
		},
		{
			name:     "vertex without project",
			config:   llm.ProviderConfig{ModelID: "gemini-2.5-flash", Kwargs: llm.Kwargs{OptionVertexAI: true}},
			wantCode: "missing_project",
		},
		{
			name:     "vertex flag of wrong type",
			config:   llm.ProviderConfig{ModelID: "gemini-2.5-flash", Kwargs: llm.Kwargs{OptionVertexAI: "maybe"}},
			wantCode: llm.CodeInvalidOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			model, err := NewModel(tt.config)
			if tt.wantCode != "" {
				var llmErr *llm.Error
				require.ErrorAs(t, err, &llmErr)
				assert.Equal(t, tt.wantCode, llmErr.Code)
				return
			}
			require.NoError(t, err)
			info := model.GetModelInfo()
			assert.Equal(t, ProviderName, info.Provider)
			assert.Equal(t, tt.wantModel, info.Name)
			assert.Equal(t, 1048576, info.MaxTokens)
		})
	}
}
