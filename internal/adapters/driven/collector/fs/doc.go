// Package fs provides a Collector implementation backed by the local
// filesystem. It enumerates the HTML chapter files of an input directory
// and orders them deterministically according to the requested sort mode.
package fs
