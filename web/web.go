// Package web embeds the browser karaoke page served at the root of the
// HTTP server. The page drives a session through the REST API and renders
// the directives pushed over the session's websocket.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Files returns the static site rooted at index.html
func Files() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
