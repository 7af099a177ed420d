package domain

// Default settings values. They mirror a local Ollama deployment with the
// nomic-embed-text embedding model.
const (
	DefaultBaseURL    = "http://127.0.0.1:11434"
	DefaultChatModel  = "eloi"
	DefaultEmbedModel = "nomic-embed-text"

	DefaultChunkSize    = 1200
	DefaultChunkOverlap = 150

	DefaultTopK            = 6
	DefaultContextMaxChars = 12_000
)

// AIProvider identifies the service backing embeddings or answering.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Settings holds the user-tunable configuration for the memory store.
// Zero values are replaced with defaults by Normalise.
type Settings struct {
	// Provider selects the embedding and answering backend.
	Provider AIProvider `toml:"provider"`

	// BaseURL is the provider API base URL.
	BaseURL string `toml:"base_url"`

	// APIKey authenticates against cloud providers. Unused for Ollama.
	APIKey string `toml:"api_key"`

	// ChatModel is the answering model name.
	ChatModel string `toml:"chat_model"`

	// EmbedModel is the embedding model name.
	EmbedModel string `toml:"embed_model"`

	// DataDir holds the chunk database. Empty means ~/.recall/data.
	DataDir string `toml:"data_dir"`

	// ChunkSize is the chunk window length in characters.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the character overlap between consecutive windows.
	ChunkOverlap int `toml:"chunk_overlap"`

	// TopK is the number of chunks retrieved per question.
	TopK int `toml:"top_k"`

	// ContextMaxChars caps the assembled context block length.
	ContextMaxChars int `toml:"context_max_chars"`

	// EmbedRateLimit throttles embedding calls during ingestion, in
	// requests per second. Zero disables throttling.
	EmbedRateLimit float64 `toml:"embed_rate_limit"`
}

// DefaultSettings returns settings for a stock local deployment.
func DefaultSettings() Settings {
	return Settings{
		Provider:        AIProviderOllama,
		BaseURL:         DefaultBaseURL,
		ChatModel:       DefaultChatModel,
		EmbedModel:      DefaultEmbedModel,
		ChunkSize:       DefaultChunkSize,
		ChunkOverlap:    DefaultChunkOverlap,
		TopK:            DefaultTopK,
		ContextMaxChars: DefaultContextMaxChars,
	}
}

// Normalise fills zero values with defaults and clamps nonsense.
func (s *Settings) Normalise() {
	if !s.Provider.IsValid() {
		s.Provider = AIProviderOllama
	}
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.ChatModel == "" {
		s.ChatModel = DefaultChatModel
	}
	if s.EmbedModel == "" {
		s.EmbedModel = DefaultEmbedModel
	}
	if s.ChunkSize <= 0 {
		s.ChunkSize = DefaultChunkSize
	}
	if s.ChunkOverlap < 0 {
		s.ChunkOverlap = 0
	}
	if s.TopK <= 0 {
		s.TopK = DefaultTopK
	}
	if s.ContextMaxChars <= 0 {
		s.ContextMaxChars = DefaultContextMaxChars
	}
	if s.EmbedRateLimit < 0 {
		s.EmbedRateLimit = 0
	}
}
