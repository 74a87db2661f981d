package content

import (
	"embed"
	"io/fs"
)

//go:embed pages/*.html
var embeddedPages embed.FS

// EmbeddedPages returns the page set compiled into the binary.
func EmbeddedPages() fs.FS {
	sub, err := fs.Sub(embeddedPages, "pages")
	if err != nil {
		// pages/ is part of the embed pattern, so Sub cannot fail
		panic(err)
	}
	return sub
}
