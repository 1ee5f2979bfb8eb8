// Package domain defines the core business entities for Passage.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Workspace: The selected folder and its included files
//   - Document: One extracted workspace file
//   - Chunk: A bounded slice of a page, the unit of embedding and retrieval
//   - SearchHit / DocumentHits: Derived similarity-query results
//   - ClassificationResult: Derived exhaustive-sweep verdicts
//   - PreprocessEvent / SweepEvent: Push-stream progress payloads
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
