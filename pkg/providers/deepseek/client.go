package deepseek

import (
	"context"
	"strings"

	"github.com/cohesion-org/deepseek-go"

	"github.com/inercia/go-langextract/pkg/llm"
)

// ProviderName is the name the provider is registered under
const ProviderName = "deepseek"

// Patterns are the model ids served by this provider
var Patterns = []string{`^deepseek`}

// Model implements llm.LanguageModel for DeepSeek
type Model struct {
	client      *deepseek.Client
	model       string
	provider    string
	temperature *float32
	maxTokens   int
}

// NewModel creates a new DeepSeek model
func NewModel(config llm.ProviderConfig) (*Model, error) {
	apiKey, _, err := config.Kwargs.String(llm.OptionAPIKey)
	if err != nil {
		return nil, err
	}
	if apiKey == "" {
		return nil, &llm.Error{
			Code:    llm.CodeMissingAPIKey,
			Message: "API key is required for DeepSeek",
			Type:    llm.ErrorTypeAuthentication,
		}
	}

	// Validate model is provided
	if config.ModelID == "" {
		return nil, &llm.Error{
			Code:    llm.CodeMissingModel,
			Message: "model is required for DeepSeek client",
			Type:    llm.ErrorTypeValidation,
		}
	}

	var opts []deepseek.Option

	baseURL, _, err := config.Kwargs.String(llm.OptionBaseURL)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		if baseURL == "http://" || baseURL == "https://" {
			return nil, &llm.Error{
				Code:    "invalid_base_url",
				Message: "base URL cannot be just a protocol",
				Type:    llm.ErrorTypeValidation,
			}
		}
		opts = append(opts, deepseek.WithBaseURL(baseURL))
	}

	timeout, ok, err := config.Kwargs.Duration(llm.OptionTimeout)
	if err != nil {
		return nil, err
	}
	if ok && timeout > 0 {
		opts = append(opts, deepseek.WithTimeout(timeout))
	}

	var client *deepseek.Client
	if len(opts) > 0 {
		client, err = deepseek.NewClientWithOptions(apiKey, opts...)
		if err != nil {
			return nil, &llm.Error{
				Code:    llm.CodeClientCreationError,
				Message: "Failed to create DeepSeek client: " + err.Error(),
				Type:    llm.ErrorTypeConfiguration,
				Err:     err,
			}
		}
	} else {
		client = deepseek.NewClient(apiKey)
	}

	m := &Model{
		client:   client,
		model:    config.ModelID,
		provider: ProviderName,
	}
	temperature, ok, err := config.Kwargs.Float32(llm.OptionTemperature)
	if err != nil {
		return nil, err
	}
	if ok {
		m.temperature = &temperature
	}
	if m.maxTokens, _, err = config.Kwargs.Int(llm.OptionMaxOutputTokens); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) buildRequest(prompt string) *deepseek.ChatCompletionRequest {
	req := &deepseek.ChatCompletionRequest{
		Model: m.model,
		Messages: []deepseek.ChatCompletionMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens: m.maxTokens,
	}
	if m.temperature != nil {
		req.Temperature = *m.temperature
	}
	return req
}

// Infer sends one chat completion per prompt
func (m *Model) Infer(ctx context.Context, prompts []string) ([][]llm.ScoredOutput, error) {
	results := make([][]llm.ScoredOutput, 0, len(prompts))
	for _, prompt := range prompts {
		resp, err := m.client.CreateChatCompletion(ctx, m.buildRequest(prompt))
		if err != nil {
			return nil, m.convertError(err)
		}
		if len(resp.Choices) == 0 {
			return nil, &llm.Error{
				Code:    llm.CodeInferenceError,
				Message: "DeepSeek returned no choices",
				Type:    llm.ErrorTypeProvider,
			}
		}
		results = append(results, llm.ScoredText(resp.Choices[0].Message.Content))
	}
	return results, nil
}

// convertError converts DeepSeek errors to our internal error format
func (m *Model) convertError(err error) *llm.Error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "Authentication"):
		return &llm.Error{Code: "authentication_failed", Message: msg, Type: llm.ErrorTypeAuthentication, StatusCode: 401, Err: err}
	case strings.Contains(msg, "429"):
		return &llm.Error{Code: "rate_limit_exceeded", Message: msg, Type: llm.ErrorTypeProvider, StatusCode: 429, Err: err}
	}
	return &llm.Error{Code: llm.CodeInferenceError, Message: msg, Type: llm.ErrorTypeProvider, Err: err}
}

// GetModelInfo returns information about the model
func (m *Model) GetModelInfo() llm.ModelInfo {
	return llm.ModelInfo{
		Name:      m.model,
		Provider:  m.provider,
		MaxTokens: 65536,
	}
}
