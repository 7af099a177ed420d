package domain

import "math/rand"

// fallbackLines are the decorative replies used when the assistant has
// nothing grounded to say. Kept small and fixed so selection is a pure
// function of the seed.
var fallbackLines = []string{
	"My memories are quiet on that one.",
	"I searched everything I remember and came up empty.",
	"Nothing in my notes covers that, I'm afraid.",
	"That one is outside what I've been taught so far.",
	"I don't have a memory that answers that yet.",
}

// PickFallback returns a decorative fallback line for the given seed.
// The same seed always yields the same line; there is no shared RNG state.
func PickFallback(seed int64) string {
	r := rand.New(rand.NewSource(seed))
	return fallbackLines[r.Intn(len(fallbackLines))]
}
