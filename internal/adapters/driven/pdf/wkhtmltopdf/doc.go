// Package wkhtmltopdf provides a Renderer implementation that shells
// out to the wkhtmltopdf binary to turn an assembled HTML document
// into a PDF file.
package wkhtmltopdf
