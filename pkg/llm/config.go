// Configuration types and response format specifications
package llm

import (
	"math"
	"time"
)

// Well-known provider option keys. Backends read the ones they understand and
// ignore the rest.
const (
	OptionAPIKey          = "api_key"
	OptionBaseURL         = "base_url"
	OptionTimeout         = "timeout"
	OptionTemperature     = "temperature"
	OptionMaxOutputTokens = "max_output_tokens"
)

// ProviderConfig is what a backend constructor receives once a provider has
// been resolved
type ProviderConfig struct {
	ModelID        string          `json:"model_id"`
	Kwargs         Kwargs          `json:"kwargs,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// Kwargs holds provider-specific options forwarded verbatim from the caller
type Kwargs map[string]interface{}

// Clone returns a shallow copy of the options. A nil receiver yields an empty map.
func (k Kwargs) Clone() Kwargs {
	out := make(Kwargs, len(k))
	for key, v := range k {
		out[key] = v
	}
	return out
}

// Has reports whether key is set
func (k Kwargs) Has(key string) bool {
	_, ok := k[key]
	return ok
}

// String returns the string option stored under key
func (k Kwargs) String(key string) (string, bool, error) {
	v, ok := k[key]
	if !ok || v == nil {
		return "", false, nil
	}
	s, isString := v.(string)
	if !isString {
		return "", false, NewInvalidOptionError(key, v, "string")
	}
	return s, true, nil
}

// Bool returns the boolean option stored under key
func (k Kwargs) Bool(key string) (bool, bool, error) {
	v, ok := k[key]
	if !ok || v == nil {
		return false, false, nil
	}
	b, isBool := v.(bool)
	if !isBool {
		return false, false, NewInvalidOptionError(key, v, "bool")
	}
	return b, true, nil
}

// Float32 returns the numeric option stored under key
func (k Kwargs) Float32(key string) (float32, bool, error) {
	v, ok := k[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case float32:
		return n, true, nil
	case float64:
		return float32(n), true, nil
	case int:
		return float32(n), true, nil
	case int32:
		return float32(n), true, nil
	case int64:
		return float32(n), true, nil
	}
	return 0, false, NewInvalidOptionError(key, v, "number")
}

// Int returns the integer option stored under key. Floats are accepted when
// they carry no fractional part.
func (k Kwargs) Int(key string) (int, bool, error) {
	v, ok := k[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return n, true, nil
	case int32:
		return int(n), true, nil
	case int64:
		return int(n), true, nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), true, nil
		}
	case float32:
		if float64(n) == math.Trunc(float64(n)) {
			return int(n), true, nil
		}
	}
	return 0, false, NewInvalidOptionError(key, v, "integer")
}

// Duration returns the duration option stored under key. Numbers are seconds,
// strings use time.ParseDuration syntax.
func (k Kwargs) Duration(key string) (time.Duration, bool, error) {
	v, ok := k[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch d := v.(type) {
	case time.Duration:
		return d, true, nil
	case int:
		return time.Duration(d) * time.Second, true, nil
	case int64:
		return time.Duration(d) * time.Second, true, nil
	case float64:
		return time.Duration(d * float64(time.Second)), true, nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err == nil {
			return parsed, true, nil
		}
	}
	return 0, false, NewInvalidOptionError(key, v, "duration")
}

// ResponseFormat specifies the desired response format for structured outputs
type ResponseFormat struct {
	Type       ResponseFormatType `json:"type"`
	JSONSchema *JSONSchema        `json:"json_schema,omitempty"`
}

// ResponseFormatType defines the type of response format
type ResponseFormatType string

const (
	// ResponseFormatText indicates plain text response (default)
	ResponseFormatText ResponseFormatType = "text"
	// ResponseFormatJSON indicates JSON object response without strict schema
	ResponseFormatJSON ResponseFormatType = "json_object"
	// ResponseFormatJSONSchema indicates JSON response with strict schema validation
	ResponseFormatJSONSchema ResponseFormatType = "json_schema"
)

// WantsJSON reports whether the format asks for JSON output of any kind
func (f *ResponseFormat) WantsJSON() bool {
	return f != nil && (f.Type == ResponseFormatJSON || f.Type == ResponseFormatJSONSchema)
}

// JSONSchema represents a JSON Schema specification for structured outputs
type JSONSchema struct {
	Name        string      `json:"name,omitempty"`        // Schema name (required by some providers)
	Description string      `json:"description,omitempty"` // Human-readable description
	Schema      interface{} `json:"schema"`                // The actual JSON Schema object
	Strict      *bool       `json:"strict,omitempty"`      // Enable strict validation (OpenAI-specific)
}
