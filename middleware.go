package scssgo

import (
	"io/fs"
	"net/http"

	intstrings "github.com/titpetric/scssgo/internal/strings"
)

// NewMiddleware creates an HTTP middleware that compiles .scss files to CSS
// on-the-fly, adapted from the teacher's middleware.go (same interception
// shape, generalized from the .less extension/parser pair to .scss/Compiler).
//
// Example usage with chi:
//
//	chi.Use(scssgo.NewMiddleware("/assets/css", os.DirFS("./assets/css")))
func NewMiddleware(basePath string, fileSystem fs.FS, opts ...Option) func(http.Handler) http.Handler {
	handler := NewHandler(fileSystem, basePath, opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			if !intstrings.HasPrefix(r.URL.Path, basePath) {
				next.ServeHTTP(w, r)
				return
			}
			if !intstrings.HasSuffix(r.URL.Path, ".scss") {
				next.ServeHTTP(w, r)
				return
			}
			handler.ServeHTTP(w, r)
		})
	}
}
