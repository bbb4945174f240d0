// Package epub provides a BookWriter implementation that packages an
// assembled book into an EPUB file.
package epub
