package domain

// Chunking floors and caps.
const (
	// MinChunkSize is the smallest effective chunk size in characters.
	MinChunkSize = 200

	// MaxOverlapRatio caps overlap at this fraction of the effective size.
	MaxOverlapRatio = 0.8

	// DefaultChunkSize is the default number of characters per chunk.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the default number of overlapping characters.
	DefaultChunkOverlap = 200
)

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// BaseURL is the OpenAI-compatible endpoint host.
	BaseURL string

	// Model is the embedding model name.
	Model string

	// APIKey is the optional bearer token.
	APIKey string
}

// IsConfigured returns true if host and model are set.
// The API key is optional: local inference servers run without one.
func (e EmbeddingSettings) IsConfigured() bool {
	return e.BaseURL != "" && e.Model != ""
}

// LLMSettings holds the classification provider configuration used by
// exhaustive sweeps.
type LLMSettings struct {
	// BaseURL is the OpenAI-compatible endpoint host.
	BaseURL string

	// Model is the chat model name.
	Model string

	// APIKey is the optional bearer token.
	APIKey string
}

// IsConfigured returns true if host and model are set.
func (l LLMSettings) IsConfigured() bool {
	return l.BaseURL != "" && l.Model != ""
}

// ChunkSettings holds chunking parameters.
type ChunkSettings struct {
	// Size is the chunk window size in characters.
	Size int

	// Overlap is the number of characters shared between adjacent chunks.
	Overlap int
}

// Normalised returns the settings with floors and caps applied:
// size is at least MinChunkSize, overlap is non-negative and at most
// MaxOverlapRatio of the effective size.
func (c ChunkSettings) Normalised() ChunkSettings {
	size := c.Size
	if size < MinChunkSize {
		size = MinChunkSize
	}
	overlap := c.Overlap
	if overlap < 0 {
		overlap = 0
	}
	if max := int(MaxOverlapRatio * float64(size)); overlap > max {
		overlap = max
	}
	return ChunkSettings{Size: size, Overlap: overlap}
}

// Settings holds all pipeline settings. They are replaced wholesale; there is
// no partial validation beyond the chunking floors and caps.
type Settings struct {
	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds the exhaustive-sweep classification provider settings.
	LLM LLMSettings

	// Chunking holds chunk size and overlap.
	Chunking ChunkSettings
}

// Normalised returns the settings with chunking floors and caps applied.
func (s Settings) Normalised() Settings {
	s.Chunking = s.Chunking.Normalised()
	return s
}

// DefaultSettings returns settings with sensible chunking defaults.
// Providers are left unconfigured; users must set them explicitly.
func DefaultSettings() Settings {
	return Settings{
		Chunking: ChunkSettings{
			Size:    DefaultChunkSize,
			Overlap: DefaultChunkOverlap,
		},
	}
}
