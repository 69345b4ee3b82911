package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a bundled CSS file by name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a bundled handlebars layout by name.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// LoadIcon loads a bundled SVG icon by name.
func LoadIcon(name string) ([]byte, error) {
	return defaultLoader.LoadIcon(name)
}

// Styles lists the bundled style names.
func Styles() []string {
	return defaultLoader.Styles()
}
