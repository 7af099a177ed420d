// Package similarity scores embedding vectors for retrieval ranking.
package similarity

import "math"

// Cosine returns the cosine similarity of a and b, in [-1, 1].
// Degenerate inputs resolve to exactly 0 instead of an error: a length
// mismatch, an empty vector or a zero-norm vector all score 0, so one
// malformed embedding ranks last rather than aborting a whole search.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(na) * math.Sqrt(nb)
	if denom == 0 {
		return 0
	}
	return dot / denom
}
