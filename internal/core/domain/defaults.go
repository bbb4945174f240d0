package domain

// Defaults holds the persistent per-user defaults consulted when a
// build does not supply a value explicitly.
type Defaults struct {
	// Author is the default book author.
	Author string

	// Language is the default IETF language tag.
	Language string

	// Stylesheet is the path of a CSS file applied to builds.
	Stylesheet string

	// Renderer is the path of the HTML-to-PDF renderer executable.
	Renderer string

	// Sanitize enables the HTML sanitisation pass on chapter bodies.
	Sanitize bool
}

// DefaultStylesheet returns the CSS applied when neither the build nor
// the stored defaults name a stylesheet.
func DefaultStylesheet() string {
	return "body{font-family:serif;line-height:1.4;margin:0 1em;}\n" +
		"img{max-width:100%;height:auto;}\n" +
		"h1{page-break-before:always;font-size:1.6em;margin:1em 0;}\n" +
		"h2{font-size:1.3em;margin:1em 0;}\n" +
		"p{margin:0.6em 0;}\n"
}
