// Package ollama provides a backend for models served by a local Ollama server.
//
// Options: base_url (defaults to http://localhost:11434, or OLLAMA_BASE_URL
// through the factory), timeout, temperature and max_output_tokens.
package ollama
