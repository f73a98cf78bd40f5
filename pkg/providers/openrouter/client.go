package openrouter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/revrost/go-openrouter"

	"github.com/inercia/go-langextract/pkg/llm"
)

// ProviderName is the name the provider is registered under
const ProviderName = "openrouter"

// OpenRouter attribution options
const (
	OptionSiteURL = "site_url"
	OptionAppName = "app_name"
)

// modelPrefix marks model ids routed through OpenRouter. It is stripped before
// the request is sent, leaving the vendor/model form OpenRouter expects.
const modelPrefix = "openrouter/"

// Patterns are the model ids served by this provider
var Patterns = []string{`^openrouter/`}

// Model implements llm.LanguageModel for OpenRouter
type Model struct {
	client      *openrouter.Client
	model       string
	provider    string
	temperature *float32
	maxTokens   int
}

// NewModel creates a new OpenRouter model
func NewModel(config llm.ProviderConfig) (*Model, error) {
	apiKey, _, err := config.Kwargs.String(llm.OptionAPIKey)
	if err != nil {
		return nil, err
	}
	if apiKey == "" {
		return nil, &llm.Error{
			Code:    llm.CodeMissingAPIKey,
			Message: "API key is required for OpenRouter",
			Type:    llm.ErrorTypeAuthentication,
		}
	}

	model := strings.TrimPrefix(config.ModelID, modelPrefix)
	if model == "" {
		return nil, &llm.Error{
			Code:    llm.CodeMissingModel,
			Message: "model is required for OpenRouter",
			Type:    llm.ErrorTypeValidation,
		}
	}

	clientConfig := openrouter.DefaultConfig(apiKey)

	baseURL, _, err := config.Kwargs.String(llm.OptionBaseURL)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	if clientConfig.HttpReferer, _, err = config.Kwargs.String(OptionSiteURL); err != nil {
		return nil, err
	}
	if clientConfig.XTitle, _, err = config.Kwargs.String(OptionAppName); err != nil {
		return nil, err
	}

	m := &Model{
		client:   openrouter.NewClientWithConfig(*clientConfig),
		model:    model,
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

func (m *Model) buildRequest(prompt string) openrouter.ChatCompletionRequest {
	req := openrouter.ChatCompletionRequest{
		Model: m.model,
		Messages: []openrouter.ChatCompletionMessage{
			{Role: "user", Content: openrouter.Content{Text: prompt}},
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
			return nil, convertOpenRouterError(err)
		}
		if len(resp.Choices) == 0 {
			return nil, &llm.Error{
				Code:    llm.CodeInferenceError,
				Message: "OpenRouter returned no choices",
				Type:    llm.ErrorTypeProvider,
			}
		}
		results = append(results, llm.ScoredText(resp.Choices[0].Message.Content.Text))
	}
	return results, nil
}

// convertOpenRouterError converts OpenRouter errors to our standardized Error format
func convertOpenRouterError(err error) *llm.Error {
	var apiErr *openrouter.APIError
	if !errors.As(err, &apiErr) {
		return &llm.Error{
			Code:    llm.CodeInferenceError,
			Message: fmt.Sprintf("OpenRouter request failed: %v", err),
			Type:    llm.ErrorTypeProvider,
			Err:     err,
		}
	}

	errorType := llm.ErrorTypeProvider
	errorCode := llm.CodeInferenceError
	switch apiErr.HTTPStatusCode {
	case 400:
		errorType, errorCode = llm.ErrorTypeValidation, "bad_request"
	case 401, 403:
		errorType, errorCode = llm.ErrorTypeAuthentication, "invalid_api_key"
	case 404:
		errorCode = "model_not_found"
	case 429:
		errorCode = "rate_limit_exceeded"
	}
	if codeStr, ok := apiErr.Code.(string); ok && codeStr != "" {
		errorCode = codeStr
	}

	return &llm.Error{
		Code:       errorCode,
		Message:    apiErr.Message,
		Type:       errorType,
		StatusCode: apiErr.HTTPStatusCode,
		Err:        err,
	}
}

// GetModelInfo returns information about the model
func (m *Model) GetModelInfo() llm.ModelInfo {
	return llm.ModelInfo{
		Name:      m.model,
		Provider:  m.provider,
		MaxTokens: 128000,
	}
}
