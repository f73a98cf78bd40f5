package gemini

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/inercia/go-langextract/pkg/llm"
)

const (
	// ProviderName is the name the provider is registered under
	ProviderName = "gemini"

	// DefaultModel is used by environment-based configuration
	DefaultModel = "gemini-2.5-flash"
)

// Vertex AI options
const (
	OptionVertexAI = "vertexai"
	OptionProject  = "project"
	OptionLocation = "location"
)

const defaultLocation = "us-central1"

// Patterns are the model ids served by this provider
var Patterns = []string{`^gemini`}

// safeIntToInt32 safely converts int to int32
func safeIntToInt32(val int) int32 {
	if val > 2147483647 {
		return 2147483647
	}
	if val < -2147483648 {
		return -2147483648
	}
	return int32(val)
}

// modelCapabilities defines the capabilities for a model pattern
type modelCapabilities struct {
	pattern   *regexp.Regexp
	maxTokens int
}

// Models are matched in order, first match wins
var modelCapabilitiesList = []modelCapabilities{
	{pattern: regexp.MustCompile(`gemini-1\.5-pro`), maxTokens: 2000000},
	{pattern: regexp.MustCompile(`gemini-(1\.5|2\.0|2\.5)-`), maxTokens: 1048576},
}

// Model implements llm.LanguageModel for Gemini, through either the Gemini
// API or Vertex AI
type Model struct {
	model          string
	provider       string
	genai          *genai.Client
	backend        genai.Backend
	temperature    *float32
	maxTokens      int
	responseFormat *llm.ResponseFormat
}

// NewModel creates a new Gemini model using the official Google Gen AI library.
func NewModel(config llm.ProviderConfig) (*Model, error) {
	kwargs := config.Kwargs
	if config.ModelID == "" {
		config.ModelID = DefaultModel
	}

	vertex, _, err := kwargs.Bool(OptionVertexAI)
	if err != nil {
		return nil, err
	}
	apiKey, _, err := kwargs.String(llm.OptionAPIKey)
	if err != nil {
		return nil, err
	}

	genaiConfig := &genai.ClientConfig{}
	if vertex {
		project, _, err := kwargs.String(OptionProject)
		if err != nil {
			return nil, err
		}
		if project == "" {
			return nil, &llm.Error{
				Code:    "missing_project",
				Message: "project is required for Gemini on Vertex AI",
				Type:    llm.ErrorTypeValidation,
			}
		}
		location, _, err := kwargs.String(OptionLocation)
		if err != nil {
			return nil, err
		}
		if location == "" {
			location = defaultLocation
		}
		genaiConfig.Backend = genai.BackendVertexAI
		genaiConfig.Project = project
		genaiConfig.Location = location
	} else {
		if apiKey == "" {
			return nil, &llm.Error{Code: llm.CodeMissingAPIKey, Message: "API key is required for Gemini", Type: llm.ErrorTypeAuthentication}
		}
		genaiConfig.Backend = genai.BackendGeminiAPI
		genaiConfig.APIKey = apiKey
	}

	timeout, ok, err := kwargs.Duration(llm.OptionTimeout)
	if err != nil {
		return nil, err
	}
	if ok && timeout > 0 {
		genaiConfig.HTTPOptions.Timeout = &timeout
	}
	baseURL, _, err := kwargs.String(llm.OptionBaseURL)
	if err != nil {
		return nil, err
	}
	genaiConfig.HTTPOptions.BaseURL = baseURL

	m := &Model{
		model:          config.ModelID,
		provider:       ProviderName,
		backend:        genaiConfig.Backend,
		responseFormat: config.ResponseFormat,
	}
	temperature, ok, err := kwargs.Float32(llm.OptionTemperature)
	if err != nil {
		return nil, err
	}
	if ok {
		m.temperature = &temperature
	}
	if m.maxTokens, _, err = kwargs.Int(llm.OptionMaxOutputTokens); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	genaiClient, err := genai.NewClient(ctx, genaiConfig)
	if err != nil {
		return nil, &llm.Error{
			Code:    llm.CodeClientCreationError,
			Message: fmt.Sprintf("Failed to create genai client: %v", err),
			Type:    llm.ErrorTypeInternal,
			Err:     err,
		}
	}
	m.genai = genaiClient

	return m, nil
}

func (m *Model) generationConfig() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if m.temperature != nil {
		config.Temperature = m.temperature
	}
	if m.maxTokens > 0 {
		config.MaxOutputTokens = safeIntToInt32(m.maxTokens)
	}
	if m.responseFormat.WantsJSON() {
		config.ResponseMIMEType = "application/json"
	}
	return config
}

// Infer generates content for each prompt
func (m *Model) Infer(ctx context.Context, prompts []string) ([][]llm.ScoredOutput, error) {
	config := m.generationConfig()
	results := make([][]llm.ScoredOutput, 0, len(prompts))
	for _, prompt := range prompts {
		resp, err := m.genai.Models.GenerateContent(ctx, m.model, genai.Text(prompt), config)
		if err != nil {
			return nil, m.convertError(err)
		}
		results = append(results, llm.ScoredText(resp.Text()))
	}
	return results, nil
}

// convertError converts genai errors to our internal error format
func (m *Model) convertError(err error) *llm.Error {
	errMsg := err.Error()

	if strings.Contains(errMsg, "API key") ||
		strings.Contains(errMsg, "authentication") ||
		strings.Contains(errMsg, "PERMISSION_DENIED") {
		return &llm.Error{Code: "authentication_failed", Message: errMsg, Type: llm.ErrorTypeAuthentication, Err: err}
	}
	if strings.Contains(errMsg, "RESOURCE_EXHAUSTED") || strings.Contains(errMsg, "quota") {
		return &llm.Error{Code: "rate_limit_exceeded", Message: errMsg, Type: llm.ErrorTypeProvider, Err: err}
	}
	return &llm.Error{Code: llm.CodeInferenceError, Message: errMsg, Type: llm.ErrorTypeProvider, Err: err}
}

// GetModelInfo returns information about the model
func (m *Model) GetModelInfo() llm.ModelInfo {
	info := llm.ModelInfo{
		Name:           m.model,
		Provider:       m.provider,
		MaxTokens:      32768,
		SupportsSchema: true,
	}
	for _, caps := range modelCapabilitiesList {
		if caps.pattern.MatchString(m.model) {
			info.MaxTokens = caps.maxTokens
			break
		}
	}
	return info
}
