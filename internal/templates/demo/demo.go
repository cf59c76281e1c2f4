// Package demo provides the placeholder-token demo page used to seed a new
// edge-tests-demo directory.
package demo

import "embed"

//go:embed files/script.js files/style.css
var demoFiles embed.FS

// Names lists the demo page files in the order they are seeded.
var Names = []string{"script.js", "style.css"}

// GetFile returns the content of one demo page file.
func GetFile(name string) ([]byte, error) {
	return demoFiles.ReadFile("files/" + name)
}
