package driven

// StylesheetStore provides the CSS applied to packaged chapters when
// the user has not pointed the build at an explicit stylesheet file.
// Implementations may materialise an editable default on first use.
type StylesheetStore interface {
	// Load returns the stylesheet text.
	Load() (string, error)

	// Dir returns the directory user stylesheets are read from.
	Dir() string
}
