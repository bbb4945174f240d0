// Package html provides a ChapterExtractor implementation for HTML
// chapter files. It pulls a chapter title from the markup and isolates
// the body content for packaging, tolerating malformed input.
package html
