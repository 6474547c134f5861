// Package scssgo compiles SCSS stylesheets to CSS, wiring together the
// lexical preprocessor, block locator, expression evaluator, built-in
// function library, block compiler, extend resolver and CSS emitter into a
// single entry point (spec.md §5 / §9).
package scssgo

import (
	"io"
	"io/fs"

	"github.com/titpetric/scssgo/compiler"
	"github.com/titpetric/scssgo/emit"
	"github.com/titpetric/scssgo/importer"
	"github.com/titpetric/scssgo/lexer"
	"github.com/titpetric/scssgo/scsslog"
)

// Config configures a Compiler, constructed via functional Options
// (spec.md's AMBIENT STACK: configuration via a Config struct plus
// With*-style functional options, matching the teacher's pattern).
type Config struct {
	LoadPaths  []string
	Compressed bool
	DebugInfo  bool
	// Debug escalates directive-level errors (undefined mixin, malformed
	// @for/@each, malformed variable assignment, failed @import) from a
	// logged warning to a hard error, per spec.md §7/§6's DEBUG key. False
	// (the default) is the tolerant-by-default mode.
	Debug  bool
	Logger *scsslog.Logger

	// CompressShortColors/ShortColors and CompressReverseColors/
	// ReverseColors mirror spec.md §6's like-named Options: the Compress*
	// variant applies in compressed mode, the other in pretty mode.
	CompressShortColors   bool
	ShortColors           bool
	CompressReverseColors bool
	ReverseColors         bool
}

// Option configures a Compiler at construction time.
type Option func(*Config)

// WithLoadPaths sets the LOAD_PATHS search order for @import.
func WithLoadPaths(paths ...string) Option {
	return func(c *Config) { c.LoadPaths = paths }
}

// WithCompressed toggles compressed output mode.
func WithCompressed(v bool) Option {
	return func(c *Config) { c.Compressed = v }
}

// WithDebugInfo sets Config.DebugInfo, which is passed on to emit.Options;
// the emitter does not act on it, so no `-sass-debug-info` media blocks are
// emitted either way.
func WithDebugInfo(v bool) Option {
	return func(c *Config) { c.DebugInfo = v }
}

// WithDebug escalates directive-level errors to fatal instead of the
// default tolerant warn-and-continue policy (spec.md §6's DEBUG key).
func WithDebug(v bool) Option {
	return func(c *Config) { c.Debug = v }
}

// WithShortColors toggles `#RRGGBB`->`#RGB` shortening: in compressed mode
// when compress is true, in pretty mode otherwise (spec.md §6).
func WithShortColors(compress, v bool) Option {
	return func(c *Config) {
		if compress {
			c.CompressShortColors = v
		} else {
			c.ShortColors = v
		}
	}
}

// WithReverseColors toggles hex->named-color rewriting, gated the same way
// as WithShortColors.
func WithReverseColors(compress, v bool) Option {
	return func(c *Config) {
		if compress {
			c.CompressReverseColors = v
		} else {
			c.ReverseColors = v
		}
	}
}

// WithLogger overrides the default stderr logger, e.g. with scsslog.Silent().
func WithLogger(l *scsslog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// Compiler is the top-level SCSS->CSS compiler: one Compiler per
// filesystem root, reusable across many Compile calls. Each call builds a
// fresh compiler.Session with its own expression cache; the token cache is
// process-wide (package token, mutex-guarded).
type Compiler struct {
	fsys fs.FS
	cfg  Config
}

// New creates a Compiler rooted at fsys, the source filesystem @import
// resolves partials against.
func New(fsys fs.FS, opts ...Option) *Compiler {
	cfg := Config{Logger: scsslog.New(nil)}
	for _, o := range opts {
		o(&cfg)
	}
	return &Compiler{fsys: fsys, cfg: cfg}
}

// Compile reads path from the Compiler's filesystem and returns its
// compiled CSS.
func (c *Compiler) Compile(path string) (string, error) {
	content, err := fs.ReadFile(c.fsys, path)
	if err != nil {
		return "", err
	}
	return c.CompileString(string(content), path)
}

// CompileString compiles an in-memory SCSS source string, as if loaded from
// path (used for error messages and relative @import resolution).
//
// Per spec.md §7, compilation is tolerant by default: directive-level
// errors are logged and compilation continues, so CompileString still
// returns whatever CSS it managed to produce even when it also returns an
// error (DEBUG mode, or a hard @error directive, can still abort early).
func (c *Compiler) CompileString(src, path string) (string, error) {
	sess := compiler.NewSession(importer.New(c.fsys), c.cfg.LoadPaths, c.cfg.Logger, c.cfg.Debug)

	fileID := sess.Index.Add(path, 0)
	instrumented := lexer.Preprocess(src, path, sess.Index)

	root := sess.Root(fileID, path)
	compileErr := sess.Compile(instrumented, root)

	css := emit.Render(sess.Output(), sess.Extend, emit.Options{
		Compressed:            c.cfg.Compressed,
		DebugInfo:             c.cfg.DebugInfo,
		CompressShortColors:   c.cfg.CompressShortColors,
		ShortColors:           c.cfg.ShortColors,
		CompressReverseColors: c.cfg.CompressReverseColors,
		ReverseColors:         c.cfg.ReverseColors,
	})
	return css, compileErr
}

// CompileTo compiles path and writes the resulting CSS to w.
func (c *Compiler) CompileTo(w io.Writer, path string) error {
	css, err := c.Compile(path)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, css)
	return err
}
