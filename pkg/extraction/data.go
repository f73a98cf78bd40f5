package extraction

import (
	"strings"

	"github.com/google/uuid"
)

// AlignmentStatus describes how an extraction's text was matched back to the source
type AlignmentStatus string

const (
	MatchExact   AlignmentStatus = "match_exact"
	MatchGreater AlignmentStatus = "match_greater"
	MatchLesser  AlignmentStatus = "match_lesser"
	MatchFuzzy   AlignmentStatus = "match_fuzzy"
)

// CharInterval is a half-open [StartPos, EndPos) span of characters in the
// source text. Either bound may be unknown.
type CharInterval struct {
	StartPos *int `json:"start_pos"`
	EndPos   *int `json:"end_pos"`
}

// NewCharInterval returns an interval with both bounds set
func NewCharInterval(start, end int) *CharInterval {
	return &CharInterval{StartPos: &start, EndPos: &end}
}

// Complete reports whether both bounds are known
func (c *CharInterval) Complete() bool {
	return c != nil && c.StartPos != nil && c.EndPos != nil
}

// Extraction is one piece of information extracted from a document
type Extraction struct {
	ExtractionClass string                 `json:"extraction_class"`
	ExtractionText  string                 `json:"extraction_text"`
	CharInterval    *CharInterval          `json:"char_interval,omitempty"`
	AlignmentStatus AlignmentStatus        `json:"alignment_status,omitempty"`
	ExtractionIndex *int                   `json:"extraction_index,omitempty"`
	GroupIndex      *int                   `json:"group_index,omitempty"`
	Description     string                 `json:"description,omitempty"`
	Attributes      map[string]interface{} `json:"attributes,omitempty"`
}

// IsGrounded reports whether the extraction is anchored to a fully specified
// span of the source text
func (e Extraction) IsGrounded() bool {
	return e.CharInterval.Complete()
}

// Document is a piece of source text to extract from
type Document struct {
	ID   string `json:"document_id"`
	Text string `json:"text"`
}

// NewDocument wraps text in a Document with a generated id
func NewDocument(text string) Document {
	return Document{ID: newDocumentID(), Text: text}
}

func newDocumentID() string {
	return "doc_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// AnnotatedDocument is a document together with the extractions found in it
type AnnotatedDocument struct {
	DocumentID  string       `json:"document_id"`
	Text        string       `json:"text,omitempty"`
	Extractions []Extraction `json:"extractions,omitempty"`
}

// RequireGrounding returns a copy of the document keeping only grounded extractions
func (d AnnotatedDocument) RequireGrounding() AnnotatedDocument {
	d.Extractions = FilterGrounded(d.Extractions)
	return d
}
