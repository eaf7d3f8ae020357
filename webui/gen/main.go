// Command gen writes a placeholder dashboard page into dist/ when no real
// dashboard build is present, so the embedded filesystem always contains an
// index.html to serve. Existing files are never overwritten.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

const placeholderIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>ZeroClaw Dashboard</title>
</head>
<body>
  <div id="app">Dashboard assets are not built yet. Run the web build to replace this placeholder.</div>
</body>
</html>
`

func main() {
	distDir := "dist"
	indexPath := filepath.Join(distDir, "index.html")

	if _, err := os.Stat(indexPath); err == nil {
		fmt.Println("webui: dist/index.html present, nothing to do")
		return
	}
	if err := os.MkdirAll(distDir, 0o755); err != nil {
		log.Fatalf("create %s: %v", distDir, err)
	}
	if err := os.WriteFile(indexPath, []byte(placeholderIndexHTML), 0o644); err != nil {
		log.Fatalf("write %s: %v", indexPath, err)
	}
	fmt.Println("webui: wrote placeholder dist/index.html")
}
