package extraction

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharIntervalComplete(t *testing.T) {
	var missing *CharInterval
	assert.False(t, missing.Complete())
	assert.False(t, (&CharInterval{}).Complete())
	assert.False(t, (&CharInterval{StartPos: intPtr(1)}).Complete())
	assert.True(t, NewCharInterval(0, 0).Complete())
}

func TestExtractionJSON(t *testing.T) {
	data := []byte(`{
		"extraction_class": "medication",
		"extraction_text": "aspirin",
		"char_interval": {"start_pos": 10, "end_pos": null},
		"alignment_status": "match_fuzzy"
	}`)

	var e Extraction
	require.NoError(t, json.Unmarshal(data, &e))
	assert.Equal(t, MatchFuzzy, e.AlignmentStatus)
	require.NotNil(t, e.CharInterval)
	assert.Equal(t, 10, *e.CharInterval.StartPos)
	assert.Nil(t, e.CharInterval.EndPos)
	assert.False(t, e.IsGrounded())
}

func TestNewDocument(t *testing.T) {
	a := NewDocument("first")
	b := NewDocument("second")

	assert.True(t, strings.HasPrefix(a.ID, "doc_"))
	assert.Len(t, a.ID, len("doc_")+8)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "first", a.Text)
}

func TestResponseFormat(t *testing.T) {
	format, err := ResponseFormat()
	require.NoError(t, err)
	require.NotNil(t, format.JSONSchema)
	assert.Equal(t, "extractions", format.JSONSchema.Name)

	schema, ok := format.JSONSchema.Schema.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "object", schema["type"])

	properties, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, properties, "extractions")
}
