// Package bedrock provides an AWS Bedrock backend for the language model factory.
//
// Requests go through the Bedrock runtime Converse API, so every text model
// family (Anthropic, Amazon, Meta, Mistral, Cohere, AI21) shares one request
// shape. Credentials come from the default AWS chain.
//
// Options:
//   - region: AWS region (defaults to AWS_REGION or us-east-1)
//   - profile: shared config profile
//   - endpoint or base_url: custom runtime endpoint
//   - temperature, max_output_tokens
package bedrock
