package openai

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/inercia/go-langextract/pkg/llm"
)

const (
	// ProviderName is the name the provider is registered under
	ProviderName = "openai"

	// DefaultModel is used by environment-based configuration
	DefaultModel = "gpt-4o-mini"

	// OptionOrganization selects the OpenAI organization
	OptionOrganization = "organization"
)

// Patterns are the model ids served by this provider
var Patterns = []string{`^gpt-4`, `^gpt4\.`, `^gpt-5`, `^gpt5\.`, `^o1`, `^o3`}

// ModelAttribute represents a model attribute with its pattern and value
type ModelAttribute[T any] struct {
	Pattern *regexp.Regexp
	Value   T
}

// Context length patterns - maximum tokens for different models
var contextLength = []ModelAttribute[int]{
	{regexp.MustCompile(`^gpt-4o(-mini)?`), 128000},
	{regexp.MustCompile(`^gpt-4\.1`), 1047576},
	{regexp.MustCompile(`^gpt-4-turbo`), 128000},
	{regexp.MustCompile(`^gpt-5`), 400000},
	{regexp.MustCompile(`^o[13]`), 200000},
	{regexp.MustCompile(`^gpt-4(-0613)?$`), 8192},
	{regexp.MustCompile(`.*`), 4096},
}

// getModelAttribute returns the attribute value for a given model by matching against patterns
func getModelAttribute[T any](model string, attributes []ModelAttribute[T]) T {
	for _, attr := range attributes {
		if attr.Pattern.MatchString(model) {
			return attr.Value
		}
	}
	var zero T
	return zero
}

// Model implements llm.LanguageModel for OpenAI chat models
type Model struct {
	client         *openai.Client
	model          string
	provider       string
	baseURL        string
	temperature    *float32
	maxTokens      int
	responseFormat *llm.ResponseFormat
}

// NewModel creates a new OpenAI model
func NewModel(config llm.ProviderConfig) (*Model, error) {
	apiKey, _, err := config.Kwargs.String(llm.OptionAPIKey)
	if err != nil {
		return nil, err
	}
	if apiKey == "" {
		return nil, &llm.Error{
			Code:    llm.CodeMissingAPIKey,
			Message: "API key is required for OpenAI",
			Type:    llm.ErrorTypeAuthentication,
		}
	}
	if config.ModelID == "" {
		return nil, &llm.Error{
			Code:    llm.CodeMissingModel,
			Message: "model is required for OpenAI",
			Type:    llm.ErrorTypeValidation,
		}
	}

	clientConfig := openai.DefaultConfig(apiKey)
	baseURL, _, err := config.Kwargs.String(llm.OptionBaseURL)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	org, _, err := config.Kwargs.String(OptionOrganization)
	if err != nil {
		return nil, err
	}
	clientConfig.OrgID = org

	m := &Model{
		model:          config.ModelID,
		provider:       ProviderName,
		baseURL:        baseURL,
		responseFormat: config.ResponseFormat,
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

	m.client = openai.NewClientWithConfig(clientConfig)
	return m, nil
}

// Infer sends one chat completion per prompt
func (m *Model) Infer(ctx context.Context, prompts []string) ([][]llm.ScoredOutput, error) {
	results := make([][]llm.ScoredOutput, 0, len(prompts))
	for _, prompt := range prompts {
		req, err := m.buildRequest(prompt)
		if err != nil {
			return nil, err
		}

		resp, err := m.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return nil, m.convertError(err)
		}
		if len(resp.Choices) == 0 {
			return nil, &llm.Error{
				Code:    llm.CodeInferenceError,
				Message: "OpenAI returned no choices",
				Type:    llm.ErrorTypeProvider,
			}
		}
		results = append(results, llm.ScoredText(resp.Choices[0].Message.Content))
	}
	return results, nil
}

func (m *Model) buildRequest(prompt string) (openai.ChatCompletionRequest, error) {
	req := openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: m.maxTokens,
	}
	if m.temperature != nil {
		req.Temperature = *m.temperature
	}

	switch {
	case m.responseFormat == nil:
	case m.responseFormat.Type == llm.ResponseFormatJSON:
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	case m.responseFormat.Type == llm.ResponseFormatJSONSchema && m.responseFormat.JSONSchema != nil:
		schema, err := m.responseFormat.SchemaJSON()
		if err != nil {
			return req, &llm.Error{Code: llm.CodeInvalidOption, Message: err.Error(), Type: llm.ErrorTypeValidation, Err: err}
		}
		jsonSchema := &openai.ChatCompletionResponseFormatJSONSchema{
			Name:        m.responseFormat.JSONSchema.Name,
			Description: m.responseFormat.JSONSchema.Description,
			Schema:      schema,
		}
		if m.responseFormat.JSONSchema.Strict != nil {
			jsonSchema.Strict = *m.responseFormat.JSONSchema.Strict
		}
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type:       openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: jsonSchema,
		}
	}
	return req, nil
}

// convertError converts OpenAI errors to our internal error format
func (m *Model) convertError(err error) *llm.Error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		errType := llm.ErrorTypeProvider
		if apiErr.HTTPStatusCode == 401 || apiErr.HTTPStatusCode == 403 {
			errType = llm.ErrorTypeAuthentication
		}
		code := llm.CodeInferenceError
		if c, ok := apiErr.Code.(string); ok && c != "" {
			code = c
		}
		return &llm.Error{
			Code:       code,
			Message:    apiErr.Message,
			Type:       errType,
			StatusCode: apiErr.HTTPStatusCode,
			Err:        err,
		}
	}

	msg := err.Error()
	if strings.Contains(msg, "context deadline exceeded") {
		return &llm.Error{Code: "timeout", Message: msg, Type: llm.ErrorTypeProvider, Err: err}
	}
	return &llm.Error{
		Code:    llm.CodeInferenceError,
		Message: fmt.Sprintf("OpenAI request failed: %v", err),
		Type:    llm.ErrorTypeProvider,
		Err:     err,
	}
}

// GetModelInfo returns information about the model
func (m *Model) GetModelInfo() llm.ModelInfo {
	return llm.ModelInfo{
		Name:           m.model,
		Provider:       m.provider,
		MaxTokens:      getModelAttribute(m.model, contextLength),
		SupportsSchema: true,
	}
}
