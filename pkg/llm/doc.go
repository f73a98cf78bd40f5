// Package llm provides the abstractions shared by language model backends.
//
// This package defines the contract between the provider factory and the
// backends it instantiates, along with the common types they exchange.
//
// The main components include:
//
// - LanguageModel interface: batch inference over prompts
// - Constructor: the function every provider registers
// - ProviderConfig and Kwargs: resolved configuration and typed option access
// - ResponseFormat: structured output requests and schema generation
// - Error handling: standardized error types and codes
// - Logging: the zap logger used across the library
//
// Provider implementations are located in separate packages under /pkg/providers/
// to maintain clean separation of concerns and avoid import cycles.
package llm
