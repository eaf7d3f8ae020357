// Package gateway serves the agent's bundled web dashboard over HTTP.
//
// It exposes the one security contract the rest of the system relies on:
// IsSafeAssetPath, the predicate deciding whether a caller-supplied asset
// path may be resolved against the bundled files. Handler applies it to
// every request and answers a uniform 404 for anything rejected, so probing
// requests cannot distinguish "blocked" from "absent".
package gateway

import (
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"
)

// DefaultPrefix is the URL prefix the dashboard build emits for its static
// assets.
const DefaultPrefix = "/_app/"

// indexFile is the single-page application entry point within the bundle.
const indexFile = "index.html"

// Cache-Control values applied to served files. Content-hashed files under
// assets/ never change and may be cached forever; entry points such as
// index.html must be revalidated on every load.
const (
	cacheImmutable = "public, max-age=31536000, immutable"
	cacheNoCache   = "no-cache"
)

// notFoundBody is the uniform response body for unsafe and missing paths.
const notFoundBody = "Not found"

// IsSafeAssetPath reports whether a caller-supplied relative asset path may
// be resolved against the bundled files. It is the sole traversal defense:
// the path must be non-empty, contain no backslash, and no segment may be
// empty, "." or "..".
func IsSafeAssetPath(p string) bool {
	if p == "" || strings.ContainsRune(p, '\\') {
		return false
	}
	for _, segment := range strings.Split(p, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return false
		}
	}
	return true
}

// Handler serves bundled static files.
//
// The asset path is the request path with Prefix and any leading slashes
// removed. Paths failing IsSafeAssetPath and paths absent from Assets are
// both answered with 404 "Not found". Only GET and HEAD are allowed.
type Handler struct {
	// Assets holds the bundled files, rooted at the directory containing
	// index.html.
	Assets fs.FS

	// Prefix is the URL prefix the handler is mounted under. It should
	// end with "/"; empty means the handler is mounted at the root.
	Prefix string
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}
	p := strings.TrimPrefix(r.URL.Path, h.Prefix)
	p = strings.TrimLeft(p, "/")
	h.serveFile(w, r, p)
}

// Fallback returns a handler that serves index.html for any path, letting
// client-side routes resolve after a full page load. The entry point is
// always served with no-cache.
func (h *Handler) Fallback() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r) {
			return
		}
		h.serveFile(w, r, indexFile)
	})
}

// Routes returns a mux with the handler mounted under Prefix and the SPA
// fallback covering everything else.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	if h.Prefix != "" && h.Prefix != "/" {
		mux.Handle(h.Prefix, h)
	}
	mux.Handle("/", h.Fallback())
	return mux
}

// serveFile resolves p against the bundle and writes it with content type
// and cache policy. Unsafe and unknown paths get the uniform 404.
func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, p string) {
	if !IsSafeAssetPath(p) {
		notFound(w)
		return
	}
	data, err := fs.ReadFile(h.Assets, p)
	if err != nil {
		notFound(w)
		return
	}

	ctype := mime.TypeByExtension(path.Ext(p))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Cache-Control", cacheFor(p))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(data)
}

// cacheFor selects the cache policy for a bundle path. Hashed build output
// lives under assets/; everything else is mutable.
func cacheFor(p string) string {
	if strings.Contains(p, "assets/") {
		return cacheImmutable
	}
	return cacheNoCache
}

// allowMethod admits GET and HEAD and rejects everything else with 405.
func allowMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}

func notFound(w http.ResponseWriter) {
	http.Error(w, notFoundBody, http.StatusNotFound)
}
