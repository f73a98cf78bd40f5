package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type simplePerson struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type nestedPeople struct {
	People []simplePerson `json:"people"`
	Count  int            `json:"count"`
}

func TestSchemaFromStruct(t *testing.T) {
	t.Run("simple struct", func(t *testing.T) {
		schema, err := SchemaFromStruct(simplePerson{})
		require.NoError(t, err)
		assert.Equal(t, "object", schema["type"])

		properties, ok := schema["properties"].(map[string]interface{})
		require.True(t, ok, "properties should be a map")

		nameField, ok := properties["name"].(map[string]interface{})
		require.True(t, ok, "name field should exist")
		assert.Equal(t, "string", nameField["type"])

		ageField, ok := properties["age"].(map[string]interface{})
		require.True(t, ok, "age field should exist")
		assert.Equal(t, "integer", ageField["type"])
	})

	t.Run("nested struct is inlined", func(t *testing.T) {
		schema, err := SchemaFromStruct(nestedPeople{})
		require.NoError(t, err)

		raw, err := json.Marshal(schema)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "$ref")
	})

	t.Run("pointer to struct", func(t *testing.T) {
		schema, err := SchemaFromStruct(&simplePerson{})
		require.NoError(t, err)
		assert.NotNil(t, schema)
	})
}

func TestNewJSONSchemaResponseFormat(t *testing.T) {
	format, err := NewJSONSchemaResponseFormatFromStruct("person", "A person", simplePerson{}, true)
	require.NoError(t, err)

	assert.Equal(t, ResponseFormatJSONSchema, format.Type)
	require.NotNil(t, format.JSONSchema)
	assert.Equal(t, "person", format.JSONSchema.Name)
	assert.Equal(t, "A person", format.JSONSchema.Description)
	require.NotNil(t, format.JSONSchema.Strict)
	assert.True(t, *format.JSONSchema.Strict)

	raw, err := format.SchemaJSON()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"properties"`)

	loose := NewJSONSchemaResponseFormat("person", "", map[string]interface{}{"type": "object"}, false)
	assert.Nil(t, loose.JSONSchema.Strict)
}

func TestSchemaJSONWithoutSchema(t *testing.T) {
	var none *ResponseFormat
	raw, err := none.SchemaJSON()
	require.NoError(t, err)
	assert.Nil(t, raw)

	raw, err = NewJSONResponseFormat().SchemaJSON()
	require.NoError(t, err)
	assert.Nil(t, raw)
}
