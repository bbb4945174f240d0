// Package domain defines the core business entities for Quire.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chapter: One source HTML file with a single derived title
//   - BookMetadata: Title, author and language of the book
//   - Book: The assembled, ordered document model
//   - ImageAsset: An image materialised for embedding
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
