// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - PageExtractor: Produces plain text per page for a file
//   - ExtractorRegistry: Selects the extractor for a file extension
//   - EmbeddingService: Generates vector embeddings
//   - ChunkClassifier: Classifies one chunk against a query
//   - ProviderFactory: Builds providers from the live settings
//   - VectorIndex: In-memory cosine-similarity search
//   - SettingsStore: Settings load/save, owned by the consuming shell
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
