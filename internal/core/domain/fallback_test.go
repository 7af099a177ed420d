package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickFallback_Deterministic(t *testing.T) {
	assert.Equal(t, PickFallback(42), PickFallback(42))
	assert.Equal(t, PickFallback(-7), PickFallback(-7))
}

func TestPickFallback_ReturnsKnownLine(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		assert.Contains(t, fallbackLines, PickFallback(seed))
	}
}

func TestPickFallback_SeedsCoverMultipleLines(t *testing.T) {
	seen := make(map[string]bool)
	for seed := int64(0); seed < 100; seed++ {
		seen[PickFallback(seed)] = true
	}
	assert.Greater(t, len(seen), 1)
}
