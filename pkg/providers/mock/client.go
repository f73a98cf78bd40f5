package mock

import (
	"context"
	"sync"
	"time"

	"github.com/inercia/go-langextract/pkg/llm"
)

// ProviderName is the name the provider is registered under
const ProviderName = "mock"

// Mock options
const (
	// OptionResponses is a list of strings returned in turn, one per prompt
	OptionResponses = "responses"
	// OptionLatency delays every prompt
	OptionLatency = "latency"
)

// DefaultResponse is returned when no canned responses are configured
const DefaultResponse = `{"extractions": []}`

// Patterns are the model ids served by this provider
var Patterns = []string{`^mock`}

// Model implements llm.LanguageModel for testing
type Model struct {
	mu            sync.Mutex
	modelInfo     llm.ModelInfo
	responses     []string
	responseIndex int
	errors        []error
	errorIndex    int
	callLog       []string
	latency       time.Duration
}

// NewModel creates a new mock model
func NewModel(config llm.ProviderConfig) (*Model, error) {
	m := &Model{
		modelInfo: llm.ModelInfo{
			Name:           config.ModelID,
			Provider:       ProviderName,
			MaxTokens:      4096,
			SupportsSchema: true,
		},
	}

	if raw, ok := config.Kwargs[OptionResponses]; ok && raw != nil {
		switch v := raw.(type) {
		case []string:
			m.responses = append(m.responses, v...)
		case []interface{}:
			for _, item := range v {
				s, isString := item.(string)
				if !isString {
					return nil, llm.NewInvalidOptionError(OptionResponses, raw, "list of strings")
				}
				m.responses = append(m.responses, s)
			}
		default:
			return nil, llm.NewInvalidOptionError(OptionResponses, raw, "list of strings")
		}
	}

	latency, _, err := config.Kwargs.Duration(OptionLatency)
	if err != nil {
		return nil, err
	}
	m.latency = latency

	return m, nil
}

// AddResponse queues a canned response
func (m *Model) AddResponse(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, response)
}

// AddError queues an error; queued errors are returned before any response
func (m *Model) AddError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, err)
}

// Infer returns the queued responses in order, cycling when they run out
func (m *Model) Infer(ctx context.Context, prompts []string) ([][]llm.ScoredOutput, error) {
	results := make([][]llm.ScoredOutput, 0, len(prompts))
	for _, prompt := range prompts {
		if m.latency > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(m.latency):
			}
		}

		text, err := m.next(prompt)
		if err != nil {
			return nil, err
		}
		results = append(results, llm.ScoredText(text))
	}
	return results, nil
}

func (m *Model) next(prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callLog = append(m.callLog, prompt)
	if m.errorIndex < len(m.errors) {
		err := m.errors[m.errorIndex]
		m.errorIndex++
		return "", err
	}
	if len(m.responses) == 0 {
		return DefaultResponse, nil
	}
	text := m.responses[m.responseIndex%len(m.responses)]
	m.responseIndex++
	return text, nil
}

// Calls returns the prompts received so far
func (m *Model) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.callLog))
	copy(out, m.callLog)
	return out
}

// GetModelInfo returns information about the model
func (m *Model) GetModelInfo() llm.ModelInfo {
	return m.modelInfo
}
