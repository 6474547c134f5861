package scssgo

import (
	"errors"
	"io/fs"
	"net/http"

	intstrings "github.com/titpetric/scssgo/internal/strings"
)

// Error types for SCSS compilation and serving.
var (
	ErrNotFound          = errors.New("not found")
	ErrCompilationFailed = errors.New("compilation failed")
)

// Handler compiles and serves .scss files from a filesystem on request,
// adapted from the teacher's handler.go (an http.Handler wrapping a
// parse-then-render call) to call Compiler.Compile instead.
type Handler struct {
	pathPrefix string
	compiler   *Compiler
}

// NewHandler creates an http.Handler serving compiled CSS for .scss files
// under fileSystem. pathPrefix is the URL path prefix to match and strip
// (e.g. "/assets/css").
func NewHandler(fileSystem fs.FS, pathPrefix string, opts ...Option) http.Handler {
	return &Handler{
		pathPrefix: pathPrefix,
		compiler:   New(fileSystem, opts...),
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.pathPrefix != "" && !intstrings.HasPrefix(r.URL.Path, h.pathPrefix) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if !intstrings.HasSuffix(r.URL.Path, ".scss") {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	scssPath := intstrings.TrimPrefix(r.URL.Path, h.pathPrefix)
	if h.pathPrefix != "/" {
		scssPath = intstrings.TrimPrefix(scssPath, "/")
	}

	css, err := h.compiler.Compile(scssPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		http.Error(w, "Compilation Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if r.Method != http.MethodHead {
		w.Write([]byte(css))
	}
}
