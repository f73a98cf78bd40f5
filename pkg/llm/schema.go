package llm

import (
	"encoding/json"
	"fmt"

	"github.com/swaggest/jsonschema-go"
)

// SchemaFromStruct generates a JSON Schema from a Go struct using the swaggest/jsonschema-go library
//
// Example:
//
//	type Person struct {
//	    Name string `json:"name" required:"true" description:"Full name"`
//	    Age  int    `json:"age" minimum:"0" maximum:"150"`
//	}
//	schema, err := SchemaFromStruct(Person{})
func SchemaFromStruct(structType interface{}) (map[string]interface{}, error) {
	reflector := jsonschema.Reflector{}

	schema, err := reflector.Reflect(structType, jsonschema.InlineRefs)
	if err != nil {
		return nil, fmt.Errorf("failed to reflect struct to JSON schema: %w", err)
	}

	// Round-trip through JSON to hand providers a plain map
	jsonBytes, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}

	var schemaMap map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema JSON to map: %w", err)
	}

	return schemaMap, nil
}

// NewJSONResponseFormat creates a ResponseFormat for basic JSON object output (no schema)
func NewJSONResponseFormat() *ResponseFormat {
	return &ResponseFormat{Type: ResponseFormatJSON}
}

// NewJSONSchemaResponseFormat creates a ResponseFormat with JSON Schema
func NewJSONSchemaResponseFormat(name, description string, schema interface{}, strict bool) *ResponseFormat {
	format := &ResponseFormat{
		Type: ResponseFormatJSONSchema,
		JSONSchema: &JSONSchema{
			Name:        name,
			Description: description,
			Schema:      schema,
		},
	}
	if strict {
		format.JSONSchema.Strict = &strict
	}
	return format
}

// NewJSONSchemaResponseFormatFromStruct creates a ResponseFormat with JSON Schema generated from a Go struct
func NewJSONSchemaResponseFormatFromStruct(name, description string, structType interface{}, strict bool) (*ResponseFormat, error) {
	schema, err := SchemaFromStruct(structType)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema from struct: %w", err)
	}

	return NewJSONSchemaResponseFormat(name, description, schema, strict), nil
}

// SchemaJSON returns the raw JSON of the schema carried by the format, or nil
// when there is none.
func (f *ResponseFormat) SchemaJSON() (json.RawMessage, error) {
	if f == nil || f.JSONSchema == nil || f.JSONSchema.Schema == nil {
		return nil, nil
	}
	raw, err := json.Marshal(f.JSONSchema.Schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response schema: %w", err)
	}
	return raw, nil
}
