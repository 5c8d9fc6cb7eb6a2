package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGymName(t *testing.T) {
	assert.Equal(t, "Base Camp", NormalizeGymName("  Base   Camp \t"))
	// Decomposed "é" (e + combining acute) composes to a single rune.
	assert.Equal(t, "Caf\u00e9 Boulder", NormalizeGymName("Cafe\u0301 Boulder"))
	assert.Equal(t, "", NormalizeGymName("   "))
}

func TestGymSlug(t *testing.T) {
	assert.Equal(t, "base-camp-tokyo", GymSlug("Base Camp  Tokyo", "x"))
	assert.Equal(t, "cafe-boulder", GymSlug("Cafe\u0301 Boulder", "x"))
	assert.Equal(t, "fallback-id", GymSlug("   ", "fallback-id"))
}

func TestSearchKey(t *testing.T) {
	assert.Equal(t, "cafe boulder", SearchKey("Café  BOULDER"))
	assert.Contains(t, SearchKey("Noborock Shibuya"), "shibuya")
}
