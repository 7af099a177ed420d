package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider_IsValid(t *testing.T) {
	assert.True(t, AIProviderOllama.IsValid())
	assert.True(t, AIProviderOpenAI.IsValid())
	assert.False(t, AIProvider("").IsValid())
	assert.False(t, AIProvider("bedrock").IsValid())
}

func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, AIProviderOllama, s.Provider)
	assert.Equal(t, DefaultBaseURL, s.BaseURL)
	assert.Equal(t, DefaultChunkSize, s.ChunkSize)
	assert.Equal(t, DefaultChunkOverlap, s.ChunkOverlap)
	assert.Equal(t, DefaultTopK, s.TopK)
	assert.Equal(t, DefaultContextMaxChars, s.ContextMaxChars)
}

func TestNormalise_FillsZeroValues(t *testing.T) {
	var s Settings
	s.Normalise()

	assert.Equal(t, AIProviderOllama, s.Provider)
	assert.Equal(t, DefaultBaseURL, s.BaseURL)
	assert.Equal(t, DefaultChatModel, s.ChatModel)
	assert.Equal(t, DefaultEmbedModel, s.EmbedModel)
	assert.Equal(t, DefaultChunkSize, s.ChunkSize)
	assert.Equal(t, DefaultTopK, s.TopK)
	assert.Equal(t, DefaultContextMaxChars, s.ContextMaxChars)
}

func TestNormalise_KeepsExplicitValues(t *testing.T) {
	s := Settings{
		Provider:  AIProviderOpenAI,
		BaseURL:   "https://example.test/v1",
		ChatModel: "custom",
		ChunkSize: 500,
		TopK:      2,
	}
	s.Normalise()

	assert.Equal(t, AIProviderOpenAI, s.Provider)
	assert.Equal(t, "https://example.test/v1", s.BaseURL)
	assert.Equal(t, "custom", s.ChatModel)
	assert.Equal(t, 500, s.ChunkSize)
	assert.Equal(t, 2, s.TopK)
}

func TestNormalise_ClampsNegatives(t *testing.T) {
	s := Settings{
		ChunkSize:      -1,
		ChunkOverlap:   -10,
		EmbedRateLimit: -3,
	}
	s.Normalise()

	assert.Equal(t, DefaultChunkSize, s.ChunkSize)
	assert.Zero(t, s.ChunkOverlap)
	assert.Zero(t, s.EmbedRateLimit)
}
