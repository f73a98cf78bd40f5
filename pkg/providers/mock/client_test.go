package mock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inercia/go-langextract/pkg/llm"
)

func TestNewModel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		kwargs  llm.Kwargs
		want    []string
		wantErr bool
	}{
		{name: "no responses", want: []string{DefaultResponse, DefaultResponse}},
		{name: "string slice", kwargs: llm.Kwargs{OptionResponses: []string{"a", "b"}}, want: []string{"a", "b"}},
		{name: "interface slice", kwargs: llm.Kwargs{OptionResponses: []interface{}{"a"}}, want: []string{"a", "a"}},
		{name: "not a list", kwargs: llm.Kwargs{OptionResponses: "a"}, wantErr: true},
		{name: "list with numbers", kwargs: llm.Kwargs{OptionResponses: []interface{}{"a", 1}}, wantErr: true},
		{name: "bad latency", kwargs: llm.Kwargs{OptionLatency: "soon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			model, err := NewModel(llm.ProviderConfig{ModelID: "mock-model", Kwargs: tt.kwargs})
			if tt.wantErr {
				var llmErr *llm.Error
				require.ErrorAs(t, err, &llmErr)
				assert.Equal(t, llm.CodeInvalidOption, llmErr.Code)
				return
			}
			require.NoError(t, err)

			out, err := model.Infer(context.Background(), make([]string, len(tt.want)))
			require.NoError(t, err)
			got := make([]string, 0, len(out))
			for _, o := range out {
				require.Len(t, o, 1)
				got = append(got, o[0].Output)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModel_QueuedErrors(t *testing.T) {
	t.Parallel()

	model, err := NewModel(llm.ProviderConfig{ModelID: "mock-model"})
	require.NoError(t, err)

	boom := errors.New("boom")
	model.AddError(boom)
	model.AddResponse("ok")

	_, err = model.Infer(context.Background(), []string{"first"})
	assert.ErrorIs(t, err, boom)

	out, err := model.Infer(context.Background(), []string{"second"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out[0][0].Output)
	assert.Equal(t, []string{"first", "second"}, model.Calls())
}

func TestModel_LatencyHonorsContext(t *testing.T) {
	t.Parallel()

	model, err := NewModel(llm.ProviderConfig{ModelID: "mock-model", Kwargs: llm.Kwargs{OptionLatency: time.Minute}})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = model.Infer(ctx, []string{"prompt"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, model.Calls())
}

func TestModel_Info(t *testing.T) {
	t.Parallel()

	model, err := NewModel(llm.ProviderConfig{ModelID: "mock-model"})
	require.NoError(t, err)
	assert.Equal(t, llm.ModelInfo{Name: "mock-model", Provider: ProviderName, MaxTokens: 4096, SupportsSchema: true}, model.GetModelInfo())
}
