package deepseek

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inercia/go-langextract/pkg/llm"
)

func TestNewModel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   llm.ProviderConfig
		wantCode string
	}{
		{
			name:   "valid",
			config: llm.ProviderConfig{ModelID: "deepseek-chat", Kwargs: llm.Kwargs{llm.OptionAPIKey: "sk-test"}},
		},
		{
			name: "custom base url and timeout",
			config: llm.ProviderConfig{ModelID: "deepseek-chat", Kwargs: llm.Kwargs{
				llm.OptionAPIKey:  "sk-test",
				llm.OptionBaseURL: "https://proxy.example.com/",
				llm.OptionTimeout: 30 * time.Second,
			}},
		},
		{
			name:     "missing api key",
			config:   llm.ProviderConfig{ModelID: "deepseek-chat"},
			wantCode: llm.CodeMissingAPIKey,
		},
		{
			name:     "missing model",
			config:   llm.ProviderConfig{Kwargs: llm.Kwargs{llm.OptionAPIKey: "sk-test"}},
			wantCode: llm.CodeMissingModel,
		},
		{
			name:     "protocol only base url",
			config:   llm.ProviderConfig{ModelID: "deepseek-chat", Kwargs: llm.Kwargs{llm.OptionAPIKey: "sk-test", llm.OptionBaseURL: "https://"}},
			wantCode: "invalid_base_url",
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
			assert.Equal(t, "deepseek-chat", info.Name)
		})
	}
}
