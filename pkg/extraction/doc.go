// Package extraction holds the extraction data model and the grounding filter.
//
// An extraction is grounded when its CharInterval is present and both of its
// bounds are known. FilterGrounded and AnnotatedDocument.RequireGrounding drop
// everything else, which is how callers ask for results that can always be
// located in the source text.
package extraction
