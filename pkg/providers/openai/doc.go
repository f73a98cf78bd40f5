// Package openai provides an OpenAI backend for the language model factory.
//
// The backend serves GPT-4, GPT-5 and o-series model ids through the chat
// completions API, one request per prompt. JSON and JSON-schema output
// formats map onto OpenAI's response_format.
//
// Options read from the provider kwargs: api_key (required), base_url,
// organization, temperature and max_output_tokens.
package openai
