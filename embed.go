// Package tanitiweb bundles the site's templates, static assets, editorial
// content and sample dataset into the binary.
package tanitiweb

import (
	"embed"
	"io/fs"
)

//go:embed templates
var templates embed.FS

//go:embed public
var public embed.FS

//go:embed content
var content embed.FS

// SampleData is the bundled demo dataset.
//
//go:embed data/taniti.json
var SampleData []byte

// Templates returns the template tree rooted at templates/.
func Templates() fs.FS { return sub(templates, "templates") }

// Public returns the static asset tree rooted at public/assets/.
func Public() fs.FS { return sub(public, "public/assets") }

// Content returns the markdown tree rooted at content/.
func Content() fs.FS { return sub(content, "content") }

func sub(fsys fs.FS, dir string) fs.FS {
	out, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return out
}
