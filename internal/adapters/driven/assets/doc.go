// Package assets provides an ImageMaterializer implementation that
// resolves the images referenced by chapter bodies into local files.
// Remote images are downloaded, data URIs are decoded to disk, and
// local references are resolved against the chapter's directory, so
// the writers only ever deal with files that exist.
package assets
