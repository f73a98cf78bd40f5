// Package deepseek provides a DeepSeek backend for the language model factory.
//
// Model ids starting with "deepseek" resolve here, except the locally served
// deepseek-r1 family which the ollama provider claims with a more specific
// pattern. Options: api_key (required), base_url, timeout, temperature and
// max_output_tokens. Structured output formats are not supported and are
// ignored.
package deepseek
