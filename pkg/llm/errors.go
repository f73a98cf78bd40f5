// Error types and handling
package llm

import (
	"errors"
	"fmt"
)

// Error types
const (
	ErrorTypeConfiguration  = "configuration_error"
	ErrorTypeValidation     = "validation_error"
	ErrorTypeAuthentication = "authentication_error"
	ErrorTypeInternal       = "internal_error"
	ErrorTypeProvider       = "provider_error"
)

// Error codes
const (
	CodeProviderNotFound    = "provider_not_found"
	CodeAmbiguousProvider   = "ambiguous_provider"
	CodeMissingModel        = "missing_model"
	CodeMissingAPIKey       = "missing_api_key"
	CodeInvalidOption       = "invalid_option"
	CodeClientCreationError = "client_creation_error"
	CodeInferenceError      = "inference_error"
)

var (
	// ErrProviderNotFound matches any error reporting that no provider could be resolved.
	ErrProviderNotFound = &Error{Code: CodeProviderNotFound, Type: ErrorTypeConfiguration}

	// ErrAmbiguousProvider matches any error reporting that several providers claim a model id.
	ErrAmbiguousProvider = &Error{Code: CodeAmbiguousProvider, Type: ErrorTypeConfiguration}
)

// Error represents a standardized LLM error
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	StatusCode int    `json:"status_code,omitempty"`
	Err        error  `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// NewConfigurationError creates a configuration_error with a formatted message
func NewConfigurationError(code, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Type:    ErrorTypeConfiguration,
	}
}

// NewInvalidOptionError reports a provider option with an unusable value
func NewInvalidOptionError(key string, value interface{}, want string) *Error {
	return &Error{
		Code:    CodeInvalidOption,
		Message: fmt.Sprintf("invalid value for option %q: expected %s, got %T", key, want, value),
		Type:    ErrorTypeValidation,
	}
}

// IsConfigurationError reports whether err is a resolution failure rather than
// a failure raised by a backend while being constructed.
func IsConfigurationError(err error) bool {
	var llmErr *Error
	if !errors.As(err, &llmErr) {
		return false
	}
	return llmErr.Type == ErrorTypeConfiguration
}
