// Package embedded bundles a small sample gallery so the binary can
// validate, render and serve something without a data directory.
package embedded

import (
	"embed"
	"io/fs"
)

// Dir is the directory inside FS holding the collection files.
const Dir = "data"

// FS holds models.json, datasources.json and projects.json.
//
//go:embed data/*.json
var FS embed.FS

// Data returns the sample collections rooted at their directory.
func Data() fs.FS {
	sub, err := fs.Sub(FS, Dir)
	if err != nil {
		panic(err) // the directory is embedded at build time
	}
	return sub
}
