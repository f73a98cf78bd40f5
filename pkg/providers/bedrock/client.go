package bedrock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"

	"github.com/inercia/go-langextract/pkg/llm"
)

const (
	// ProviderName is the name the provider is registered under
	ProviderName = "bedrock"

	// DefaultRegion is used when neither the options nor the environment name one
	DefaultRegion = "us-east-1"
)

// Bedrock options
const (
	OptionRegion   = "region"
	OptionEndpoint = "endpoint"
	OptionProfile  = "profile"
)

// Patterns are the model ids served by this provider: Bedrock model ids and
// cross-region inference profiles
var Patterns = []string{
	`^anthropic\.`, `^amazon\.`, `^meta\.llama`, `^mistral\.`,
	`^cohere\.`, `^ai21\.`, `^(us|eu|apac)\.anthropic\.`,
}

// Model implements llm.LanguageModel for AWS Bedrock using the Converse API
type Model struct {
	runtime     *bedrockruntime.Client
	model       string
	region      string
	provider    string
	temperature *float32
	maxTokens   int
}

// NewModel creates a new AWS Bedrock model
func NewModel(config llm.ProviderConfig) (*Model, error) {
	if config.ModelID == "" {
		return nil, &llm.Error{
			Code:    llm.CodeMissingModel,
			Message: "model is required for Bedrock",
			Type:    llm.ErrorTypeValidation,
		}
	}

	region, _, err := config.Kwargs.String(OptionRegion)
	if err != nil {
		return nil, err
	}
	if region == "" {
		region = DefaultRegion
	}
	profile, _, err := config.Kwargs.String(OptionProfile)
	if err != nil {
		return nil, err
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(profile))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, &llm.Error{
			Code:    "aws_config_error",
			Message: fmt.Sprintf("Failed to load AWS configuration: %v", err),
			Type:    llm.ErrorTypeAuthentication,
			Err:     err,
		}
	}

	endpoint, _, err := config.Kwargs.String(OptionEndpoint)
	if err != nil {
		return nil, err
	}
	if endpoint == "" {
		// base_url is accepted for consistency with other providers
		if endpoint, _, err = config.Kwargs.String(llm.OptionBaseURL); err != nil {
			return nil, err
		}
	}

	runtime := bedrockruntime.NewFromConfig(awsConfig, func(o *bedrockruntime.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	m := &Model{
		runtime:  runtime,
		model:    config.ModelID,
		region:   region,
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

func (m *Model) buildInput(prompt string) *bedrockruntime.ConverseInput {
	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(m.model),
		Messages: []types.Message{
			{
				Role:    types.ConversationRoleUser,
				Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: prompt}},
			},
		},
	}
	if m.temperature != nil || m.maxTokens > 0 {
		input.InferenceConfig = &types.InferenceConfiguration{}
		if m.temperature != nil {
			input.InferenceConfig.Temperature = aws.Float32(*m.temperature)
		}
		if m.maxTokens > 0 {
			input.InferenceConfig.MaxTokens = aws.Int32(int32(m.maxTokens))
		}
	}
	return input
}

// Infer runs one Converse call per prompt
func (m *Model) Infer(ctx context.Context, prompts []string) ([][]llm.ScoredOutput, error) {
	results := make([][]llm.ScoredOutput, 0, len(prompts))
	for _, prompt := range prompts {
		out, err := m.runtime.Converse(ctx, m.buildInput(prompt))
		if err != nil {
			return nil, m.convertError(err)
		}
		results = append(results, llm.ScoredText(outputText(out)))
	}
	return results, nil
}

// outputText concatenates the text blocks of a Converse response
func outputText(out *bedrockruntime.ConverseOutput) string {
	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return ""
	}
	var sb strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			sb.WriteString(text.Value)
		}
	}
	return sb.String()
}

// convertError converts AWS errors to our internal error format
func (m *Model) convertError(err error) *llm.Error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		errType := llm.ErrorTypeProvider
		switch apiErr.ErrorCode() {
		case "AccessDeniedException", "UnrecognizedClientException", "ExpiredTokenException":
			errType = llm.ErrorTypeAuthentication
		case "ValidationException":
			errType = llm.ErrorTypeValidation
		}
		return &llm.Error{
			Code:    apiErr.ErrorCode(),
			Message: apiErr.ErrorMessage(),
			Type:    errType,
			Err:     err,
		}
	}
	return &llm.Error{
		Code:    llm.CodeInferenceError,
		Message: fmt.Sprintf("Bedrock request failed: %v", err),
		Type:    llm.ErrorTypeProvider,
		Err:     err,
	}
}

// GetModelInfo returns information about the model
func (m *Model) GetModelInfo() llm.ModelInfo {
	maxTokens := 8192
	if strings.Contains(m.model, "anthropic.claude") {
		maxTokens = 200000
	}
	return llm.ModelInfo{
		Name:      m.model,
		Provider:  m.provider,
		MaxTokens: maxTokens,
	}
}
