package extraction

// FilterGrounded returns the grounded extractions in their original order.
// A nil or empty input yields an empty, non-nil slice. Kept extractions are
// copied unchanged and the input is never modified.
func FilterGrounded(extractions []Extraction) []Extraction {
	grounded := make([]Extraction, 0, len(extractions))
	for _, e := range extractions {
		if e.IsGrounded() {
			grounded = append(grounded, e)
		}
	}
	return grounded
}
