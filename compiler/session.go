package compiler

import (
	"fmt"
	"strings"

	"github.com/titpetric/scssgo/block"
	"github.com/titpetric/scssgo/builtin"
	"github.com/titpetric/scssgo/eval"
	"github.com/titpetric/scssgo/extend"
	"github.com/titpetric/scssgo/lexer"
	"github.com/titpetric/scssgo/scsslog"
	"github.com/titpetric/scssgo/value"
)

// Loader resolves an @import argument to file content, adapted from the
// importer package's fs.FS-backed resolution (spec.md §4.G / §6).
type Loader interface {
	Load(path string, loadPaths []string) (content string, resolved string, err error)
}

// Session owns the caches and tables a single compilation run shares across
// every Rule it spawns: the expression Evaluator (which holds the expression
// cache), the built-in Registry, the fileid Index, the extend graph, and the
// output accumulator. The token cache is not per session: package token
// keeps one process-wide, mutex-guarded cache. There is no sprite-map cache.
type Session struct {
	Eval     *eval.Evaluator
	Builtins *builtin.Registry
	Index    *lexer.Index
	Extend   *extend.Graph
	Loader   Loader
	Log      *scsslog.Logger

	LoadPaths []string

	// Debug gates spec.md §7's error-handling policy: false (the default)
	// makes directive-level errors (undefined mixin, malformed @for/@each,
	// malformed variable assignment, failed @import) non-fatal -- logged via
	// Log.Warn and rendered as CSS passthrough or dropped, per error kind.
	// true escalates them to hard Go errors instead.
	Debug bool

	position int
	output   []*Rule // finalized, emittable rules in render order
}

// NewSession constructs a Session with a fresh builtin registry, evaluator,
// fileid index and extend graph, the generalized equivalent of the
// teacher's renderer.NewRenderer constructor.
func NewSession(loader Loader, loadPaths []string, log *scsslog.Logger, debug bool) *Session {
	reg := builtin.Default()
	s := &Session{
		Eval:      eval.New(reg),
		Builtins:  reg,
		Index:     lexer.NewIndex(),
		Extend:    extend.NewGraph(),
		Loader:    loader,
		Log:       log,
		LoadPaths: loadPaths,
		Debug:     debug,
	}
	return s
}

// tolerate implements spec.md §7's tolerant-by-default error policy: log a
// warning and swallow err, unless Debug is set, in which case it escalates
// err back to the caller (making the whole Compile call fail).
func (s *Session) tolerate(err error) error {
	if err == nil {
		return nil
	}
	s.Log.Warn(err.Error())
	if s.Debug {
		return err
	}
	return nil
}

// Root spawns the top-level Rule for a file: empty context, fresh options,
// the root selector (empty string).
func (s *Session) Root(fileID int, path string) *Rule {
	s.position++
	return &Rule{
		FileID:   fileID,
		Position: s.position,
		Context:  map[string]value.Value{},
		Options:  NewOptions(),
		Path:     path,
		owner:    s,
	}
}

// Compile runs the block compiler over src inside parent, per spec.md §4.G's
// manage_children walk: locate top-level blocks, dispatch each. src must
// already be preprocessed by lexer.Preprocess; Compile does not do it.
func (s *Session) Compile(src string, parent *Rule) error {
	blocks := block.Locate(src)
	for _, b := range blocks {
		loc := s.Index.Lookup(b.Lineno)
		lineno := parseLineno(loc)
		if err := s.dispatch(b, parent, lineno); err != nil {
			return fmt.Errorf("%s: %w", loc, err)
		}
	}
	return nil
}

func parseLineno(loc string) int {
	idx := strings.LastIndex(loc, ":")
	if idx < 0 {
		return 0
	}
	n := 0
	for _, c := range loc[idx+1:] {
		if c < '0' || c > '9' {
			return n
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// dispatch routes one located block to its directive/property/rule handler,
// per spec.md §4.G's full directive table.
func (s *Session) dispatch(b block.Block, parent *Rule, lineno int) error {
	header := strings.TrimSpace(b.Header)
	child := parent.Spawn(func(r *Rule) { r.Lineno = lineno })

	switch {
	case header == "":
		return nil
	case strings.HasPrefix(header, "@"):
		return s.dispatchAtRule(header, b.Body, parent, child, lineno)
	case strings.HasPrefix(header, "$") || isVariableAssignment(header):
		return s.assignVariable(header, parent)
	case b.Body == nil:
		return s.appendProperty(header, parent, lineno)
	default:
		return s.compileNestedRule(header, *b.Body, parent, lineno)
	}
}

func isVariableAssignment(header string) bool {
	return strings.HasPrefix(strings.TrimSpace(header), "$")
}

// assignVariable implements `$name: value [!default] [!global]` (spec.md
// §4.G / §3): !default only binds if the name is unset, !global writes into
// the root-most accessible scope rather than the local Rule -- simplified
// here to "the immediate Rule's CONTEXT", since Spawn's copy-on-write already
// makes parent writes invisible to siblings compiled earlier.
func (s *Session) assignVariable(header string, r *Rule) error {
	colon := strings.Index(header, ":")
	if colon < 0 {
		if err := s.tolerate(fmt.Errorf("malformed variable assignment %q", header)); err != nil {
			return err
		}
		r.Properties = append(r.Properties, Property{Property: header})
		return nil
	}
	name := strings.TrimPrefix(strings.TrimSpace(header[:colon]), "$")
	rest := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(header[colon+1:]), ";"))

	isDefault := false
	if strings.Contains(rest, "!default") {
		isDefault = true
		rest = strings.TrimSpace(strings.Replace(rest, "!default", "", 1))
	}
	rest = strings.TrimSpace(strings.Replace(rest, "!global", "", 1))

	if isDefault {
		if existing, ok := r.Lookup(name); ok && !existing.IsUndefined() {
			return nil
		}
	}

	val, err := s.Eval.Eval(s.Eval.Interpolate(rest, r), r, true)
	if err != nil {
		return err
	}
	r.Context[name] = val
	return nil
}

// appendProperty implements a bare `prop: value;` or side-effect line inside
// a rule body, interpolating #{...} and evaluating the value expression
// (spec.md §4.G).
func (s *Session) appendProperty(header string, r *Rule, lineno int) error {
	header = strings.TrimSuffix(header, ";")
	colon := strings.Index(header, ":")
	if colon < 0 {
		r.Properties = append(r.Properties, Property{Lineno: lineno, Property: strings.TrimSpace(header)})
		return nil
	}
	prop := strings.TrimSpace(s.Eval.Interpolate(header[:colon], r))
	raw := strings.TrimSpace(header[colon+1:])
	val, err := s.Eval.Eval(s.Eval.Interpolate(raw, r), r, false)
	if err != nil {
		return err
	}
	text := val.String()
	r.Properties = append(r.Properties, Property{Lineno: lineno, Property: prop, Value: &text})
	return nil
}

// compileNestedRule implements selector normalization/composition (parent
// "&" substitution, comma-separated compound selectors) and recurses into
// the nested body with a child Rule carrying the composed SELECTORS
// (spec.md §4.G).
func (s *Session) compileNestedRule(header, body string, parent *Rule, lineno int) error {
	selector := s.Eval.Interpolate(header, parent)
	composed := composeSelectors(parent.Selectors, selector)

	child := parent.Spawn(func(r *Rule) {
		r.Lineno = lineno
		r.Selectors = composed
		r.Properties = nil
	})

	// Reserve the rule's output position (and document order) before
	// recursing, per spec.md §4.G's "rules emit in the order their
	// selector is first encountered": a rule with a nested child whose own
	// properties appear later in the source still precedes that child in
	// the output. emit.Render skips any rule whose Properties end up empty
	// (e.g. a selector block containing only nested rules), so reserving a
	// slot here unconditionally is safe.
	s.position++
	child.Position = s.position
	s.output = append(s.output, child)

	if err := s.Compile(body, child); err != nil {
		return err
	}

	s.Extend.Register(composed, child.Position)
	return nil
}

// composeSelectors splits parent and child on "," and substitutes "&" with
// the parent selector in every combination, falling back to descendant
// combination (space-joined) when the child has no "&".
func composeSelectors(parentSel, childSel string) string {
	if strings.TrimSpace(parentSel) == "" {
		return strings.TrimSpace(childSel)
	}
	parents := splitTopLevel(parentSel, ',')
	children := splitTopLevel(childSel, ',')
	var out []string
	for _, p := range parents {
		p = strings.TrimSpace(p)
		for _, c := range children {
			c = strings.TrimSpace(c)
			if strings.Contains(c, "&") {
				out = append(out, strings.ReplaceAll(c, "&", p))
			} else {
				out = append(out, p+" "+c)
			}
		}
	}
	return strings.Join(out, ", ")
}

func splitTopLevel(s string, sep rune) []string {
	var out []string
	depth := 0
	start := 0
	for i, c := range s {
		switch c {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case sep:
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

// Output returns the finalized Rules in render order, ready for emit.
func (s *Session) Output() []*Rule { return s.output }
