// Package importer resolves @import targets against a search path of
// directories, probing the Sass partial-file naming convention (spec.md
// §4.G / §6): "name" may resolve to "_name.scss" or "name.scss", checked in
// that order against each directory in LOAD_PATHS in turn.
//
// Grounded on the teacher's importer/importer.go (an fs.FS-backed resolver
// with import-option parsing), adapted here from LESS's bare-filename
// probing to SCSS's underscore-partial convention and from AST splicing to
// returning raw content for the compiler.Session to recompile.
package importer

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Importer resolves @import targets against an fs.FS, implementing
// compiler.Loader.
type Importer struct {
	fsys fs.FS
}

// New creates an Importer rooted at filesystem.
func New(filesystem fs.FS) *Importer {
	return &Importer{fsys: filesystem}
}

// Load implements compiler.Loader: resolve target against loadPaths using
// the partial-file probing order, returning the file's content and the
// resolved path used (for diagnostics/debug-info).
func (imp *Importer) Load(target string, loadPaths []string) (string, string, error) {
	for _, candidate := range candidatePaths(target, loadPaths) {
		content, err := fs.ReadFile(imp.fsys, candidate)
		if err == nil {
			return string(content), candidate, nil
		}
	}
	return "", "", fmt.Errorf("import not found: %q (searched %d candidates across %d load path(s))",
		target, len(candidatePaths(target, loadPaths)), len(loadPaths)+1)
}

// candidatePaths enumerates every file this target could resolve to, per
// the partial convention: within a directory "a/b", name "c" probes
// "a/b/_c.scss" then "a/b/c.scss"; a target already ending in .scss or
// .css is tried as-is only. loadPaths is searched in order, with "." (the
// filesystem root) added here in front of it; the compiler passes the
// importing file's directory as part of loadPaths.
func candidatePaths(target string, loadPaths []string) []string {
	dir, name := path.Split(target)
	hasExt := strings.HasSuffix(name, ".scss") || strings.HasSuffix(name, ".css")

	var names []string
	if hasExt {
		names = append(names, name)
	} else {
		names = append(names, "_"+name+".scss", name+".scss")
	}

	var out []string
	for _, lp := range append([]string{"."}, loadPaths...) {
		base := path.Join(lp, dir)
		for _, n := range names {
			out = append(out, path.Clean(path.Join(base, n)))
		}
	}
	return out
}
