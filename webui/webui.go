// Package webui bundles the agent dashboard's built assets into the binary.
//
// Release builds copy the dashboard's build output into dist/ beforehand.
// When no build is present, dist/ holds a generated placeholder page so the
// binary always has something to serve; run go generate ./... to (re)create
// it.
package webui

import (
	"embed"
	"io/fs"
)

//go:generate go run ./gen

//go:embed all:dist
var dist embed.FS

// Assets returns the bundled dashboard files rooted at the directory
// containing index.html.
func Assets() fs.FS {
	sub, err := fs.Sub(dist, "dist")
	if err != nil {
		// The embed directive guarantees dist exists in the binary.
		panic(err)
	}
	return sub
}
