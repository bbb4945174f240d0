// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Collector: Lists chapter files from the input directory in order
//   - ChapterExtractor: Derives a title and body from one HTML file
//   - BookWriter: Serialises the assembled Book into an EPUB package
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the corresponding step is skipped:
//
//   - ChapterPipeline: Post-processing of extracted chapters
//   - ImageMaterializer: Resolves and embeds referenced images. Without
//     it, image references are passed through untouched.
//   - Renderer: External HTML-to-PDF renderer. Only required when a PDF
//     output is requested.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
