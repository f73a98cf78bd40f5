package extraction

import (
	"github.com/inercia/go-langextract/pkg/llm"
)

// schemaExtraction is the shape a model is asked to produce for each
// extraction. Positions are computed later by alignment, so they are absent.
type schemaExtraction struct {
	ExtractionClass string            `json:"extraction_class" required:"true" description:"Category of the extracted item"`
	ExtractionText  string            `json:"extraction_text" required:"true" description:"Exact text copied from the source"`
	Attributes      map[string]string `json:"attributes,omitempty" description:"Additional properties of the item"`
}

type schemaPayload struct {
	Extractions []schemaExtraction `json:"extractions" required:"true"`
}

// ResponseFormat returns the structured output format asking a model for a
// JSON object with an "extractions" list. It is meant for ModelConfig.OutputFormat.
func ResponseFormat() (*llm.ResponseFormat, error) {
	return llm.NewJSONSchemaResponseFormatFromStruct(
		"extractions",
		"Entities extracted from the source text",
		schemaPayload{},
		false,
	)
}
