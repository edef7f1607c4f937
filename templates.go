package regform

import (
	"io/fs"

	vanilla "github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet served alongside the form.
//
// Typical mount:
//
//	mux.Handle("GET /styles.css", http.FileServerFS(regform.AssetsFS()))
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
