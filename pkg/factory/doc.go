// Package factory resolves model configurations to language model backends.
//
// Providers are registered in a Registry under a name, a list of model id
// patterns and a constructor. The builtin providers (gemini, openai, ollama,
// deepseek, openrouter, bedrock and mock) are registered lazily the first
// time any resolution runs, whichever entry point is used.
//
// Resolution order:
//   - an explicit Implementation in the ModelConfig is used as is
//   - an explicit Provider is looked up by name or alias
//   - otherwise the ModelID is matched against every registered pattern;
//     higher priority wins, then the longest matching pattern, and a
//     remaining tie is an ambiguous configuration error
//
// Example usage:
//
//	import (
//	    "github.com/inercia/go-langextract/pkg/factory"
//	)
//
//	model, err := factory.CreateModel(factory.ModelConfig{
//	    ModelID:        "gemini-2.5-flash",
//	    ProviderKwargs: map[string]interface{}{"api_key": "your-api-key"},
//	})
//
// Third-party backends register themselves from an init function:
//
//	func init() {
//	    factory.Register("acme", []string{`^acme-`}, newAcmeModel)
//	}
package factory
