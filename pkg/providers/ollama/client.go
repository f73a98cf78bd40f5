package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/inercia/go-langextract/pkg/llm"
)

const (
	// ProviderName is the name the provider is registered under
	ProviderName = "ollama"

	// DefaultModel is used by environment-based configuration
	DefaultModel = "gemma2:2b"

	// DefaultBaseURL is the local Ollama server
	DefaultBaseURL = "http://localhost:11434"

	// DefaultTimeout applies when no timeout option is given. Local inference is slow.
	DefaultTimeout = 120 * time.Second
)

// Patterns are the model ids served by this provider: local model families
// and their Hugging Face style names
var Patterns = []string{
	`^gemma`, `^llama`, `^mistral`, `^mixtral`, `^phi`, `^qwen`,
	`^deepseek-r1`, `^command-r`, `^starcoder`, `^codellama`, `^codegemma`,
	`^tinyllama`, `^wizardcoder`, `^gpt-oss`,
	`^meta-llama/[Ll]lama`, `^google/gemma`, `^mistralai/[Mm]istral`,
	`^microsoft/phi`, `^Qwen/`, `^TinyLlama/`,
}

// modelCapabilities defines the capabilities for a model pattern
type modelCapabilities struct {
	pattern   *regexp.Regexp
	maxTokens int
}

// Models are matched in order, first match wins
var modelCapabilitiesList = []modelCapabilities{
	{pattern: regexp.MustCompile(`llama3\.[123]`), maxTokens: 131072},
	{pattern: regexp.MustCompile(`qwen`), maxTokens: 32768},
	{pattern: regexp.MustCompile(`codellama`), maxTokens: 16384},
	{pattern: regexp.MustCompile(`gemma`), maxTokens: 8192},
}

// Model implements llm.LanguageModel for a local Ollama server
type Model struct {
	model          string
	baseURL        string
	client         *api.Client
	options        map[string]interface{}
	responseFormat *llm.ResponseFormat
}

// NewModel creates a new Ollama model
func NewModel(config llm.ProviderConfig) (*Model, error) {
	model := config.ModelID
	if model == "" {
		model = DefaultModel
	}

	baseURL, _, err := config.Kwargs.String(llm.OptionBaseURL)
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &llm.Error{
			Code:    "invalid_base_url",
			Message: fmt.Sprintf("invalid Ollama base URL %q", baseURL),
			Type:    llm.ErrorTypeValidation,
			Err:     err,
		}
	}

	timeout, ok, err := config.Kwargs.Duration(llm.OptionTimeout)
	if err != nil {
		return nil, err
	}
	if !ok || timeout <= 0 {
		timeout = DefaultTimeout
	}

	options := map[string]interface{}{}
	temperature, ok, err := config.Kwargs.Float32(llm.OptionTemperature)
	if err != nil {
		return nil, err
	}
	if ok {
		options["temperature"] = temperature
	}
	maxTokens, ok, err := config.Kwargs.Int(llm.OptionMaxOutputTokens)
	if err != nil {
		return nil, err
	}
	if ok {
		options["num_predict"] = maxTokens
	}

	return &Model{
		model:          model,
		baseURL:        baseURL,
		client:         api.NewClient(parsed, &http.Client{Timeout: timeout}),
		options:        options,
		responseFormat: config.ResponseFormat,
	}, nil
}

// format returns the value of the "format" field: a schema when one is
// given, "json" for plain JSON output and nothing otherwise
func (m *Model) format() (json.RawMessage, error) {
	if !m.responseFormat.WantsJSON() {
		return nil, nil
	}
	schema, err := m.responseFormat.SchemaJSON()
	if err != nil {
		return nil, err
	}
	if schema != nil {
		return schema, nil
	}
	return json.RawMessage(`"json"`), nil
}

// Infer runs a non-streaming generation for each prompt
func (m *Model) Infer(ctx context.Context, prompts []string) ([][]llm.ScoredOutput, error) {
	format, err := m.format()
	if err != nil {
		return nil, &llm.Error{Code: llm.CodeInvalidOption, Message: err.Error(), Type: llm.ErrorTypeValidation, Err: err}
	}

	stream := false
	results := make([][]llm.ScoredOutput, 0, len(prompts))
	for _, prompt := range prompts {
		req := &api.GenerateRequest{
			Model:   m.model,
			Prompt:  prompt,
			Stream:  &stream,
			Format:  format,
			Options: m.options,
		}

		var sb strings.Builder
		err := m.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
			sb.WriteString(resp.Response)
			return nil
		})
		if err != nil {
			return nil, m.convertError(err)
		}
		results = append(results, llm.ScoredText(sb.String()))
	}
	return results, nil
}

func (m *Model) convertError(err error) *llm.Error {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		code := llm.CodeInferenceError
		if statusErr.StatusCode == http.StatusNotFound {
			code = "model_not_found"
		}
		return &llm.Error{
			Code:       code,
			Message:    fmt.Sprintf("Ollama request failed: %s", statusErr.ErrorMessage),
			Type:       llm.ErrorTypeProvider,
			StatusCode: statusErr.StatusCode,
			Err:        err,
		}
	}
	return &llm.Error{
		Code:    "connection_error",
		Message: fmt.Sprintf("Ollama request to %s failed: %v", m.baseURL, err),
		Type:    llm.ErrorTypeProvider,
		Err:     err,
	}
}

// GetModelInfo returns information about the model
func (m *Model) GetModelInfo() llm.ModelInfo {
	info := llm.ModelInfo{
		Name:           m.model,
		Provider:       ProviderName,
		MaxTokens:      4096,
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
