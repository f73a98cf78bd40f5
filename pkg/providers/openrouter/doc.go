// Package openrouter provides an OpenRouter backend for the language model factory.
//
// Model ids of the form "openrouter/<vendor>/<model>" resolve here; the
// "openrouter/" prefix is removed before requests are sent. Options: api_key
// (required), base_url, site_url, app_name, temperature and max_output_tokens.
package openrouter
