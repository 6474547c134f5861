// Package compiler implements the block compiler (spec.md §4.G): a
// tree-walking evaluator over nested SCSS blocks that drives variables,
// @mixin/@function/@include/@content, @if/@for/@each, @import, @media,
// @extend, parent-selector composition, and property cascading.
//
// Grounded on the teacher's renderer/renderer.go (Renderer, renderStatement
// dispatch, bindMixinArguments, renderEachLoop, guard-chain evaluation) and
// renderer/resolver.go (ResolveValue/InterpolateVariables), generalized
// from LESS's mixin/guard-only model to the full SCSS directive set.
package compiler

import (
	"github.com/titpetric/scssgo/eval"
	"github.com/titpetric/scssgo/value"
)

// Property is one (lineno, property, value) triple in a Rule's PROPERTIES
// list; Value is nil for a bare `@warn`-style side-effect line that carries
// no output.
type Property struct {
	Lineno   int
	Property string
	Value    *string
}

// MixinEntry is a `(param-names, defaults-map, body-codestr)` record keyed
// by "@mixin name:arity" or "@function name:arity" in a Rule's Options
// (spec.md §3). IsFunction marks entries created by @function, whose
// invocation captures a `@return` value instead of splicing declarations.
type MixinEntry struct {
	Params     []string
	Defaults   map[string]string
	Body       string
	IsFunction bool
}

// Options carries a Rule's mixin/function table and directive flags,
// copy-on-write shared with children until a child writes to its own copy
// (spec.md §3 / §5).
type Options struct {
	Mixins    map[string]*MixinEntry
	Imported  map[string]bool // "@import name" entries already processed in this scope
	Return    *value.Value    // set by @return, single slot
	Content   *string         // the caller's stored body for @content, single slot
	ElseChain bool            // truth value of the preceding @if/@else if, for @else
	Flags     map[string]bool // @option a:v, ... boolean directive flags
}

// NewOptions returns an empty Options table.
func NewOptions() *Options {
	return &Options{
		Mixins:   map[string]*MixinEntry{},
		Imported: map[string]bool{},
		Flags:    map[string]bool{},
	}
}

// Clone returns a shallow copy-on-write copy: map fields are copied so a
// child cannot observe or corrupt a parent's mutations (spec.md §5).
func (o *Options) Clone() *Options {
	c := &Options{
		Mixins:   make(map[string]*MixinEntry, len(o.Mixins)),
		Imported: make(map[string]bool, len(o.Imported)),
		Flags:    make(map[string]bool, len(o.Flags)),
	}
	for k, v := range o.Mixins {
		c.Mixins[k] = v
	}
	for k, v := range o.Imported {
		c.Imported[k] = v
	}
	for k, v := range o.Flags {
		c.Flags[k] = v
	}
	return c
}

// Rule is the central compilation record (spec.md §3): an
// independently-addressable set of fields, spawned from a parent by
// copying and overriding specific slots.
type Rule struct {
	FileID     int
	Position   int
	CodeStr    string
	Deps       map[int]bool
	Context    map[string]value.Value
	Options    *Options
	Selectors  string
	Properties []Property
	Path       string
	Lineno     int
	Final      bool // read but unused, preserved per spec.md §9
	Media      []string

	owner *Session
}

// Lookup implements eval.Context over a Rule's CONTEXT.
func (r *Rule) Lookup(name string) (value.Value, bool) {
	v, ok := r.Context[name]
	return v, ok
}

// LookupUserFunction resolves "@function name:arity" from OPTIONS into a
// callable eval.Func, per spec.md §4.E's dispatch order (user-defined
// before built-in). Mixins used as bare function calls are not exposed
// here; only `@function`-declared entries are.
func (r *Rule) LookupUserFunction(key string) (eval.Func, bool) {
	entry, ok := r.Options.Mixins["@function "+key]
	if !ok || !entry.IsFunction {
		return nil, false
	}
	comp, ok := r.compilerRef()
	if !ok {
		return nil, false
	}
	return func(args []value.Value, named map[string]value.Value) (value.Value, error) {
		return comp.callFunction(r, entry, args, named)
	}, true
}

// compilerRef is set by Session.newRule so a Rule can call back into the
// compiler for user-defined function invocation without every package
// depending on *Session directly.
func (r *Rule) compilerRef() (*Session, bool) {
	if r.owner == nil {
		return nil, false
	}
	return r.owner, true
}

var _ eval.Context = (*Rule)(nil)

// Spawn creates a child Rule copying the parent's slots and applying
// overrides, per spec.md §3's copy-on-write semantics: the child sees a
// snapshot of CONTEXT/OPTIONS so the parent cannot observe child mutations.
func (r *Rule) Spawn(overrides ...func(*Rule)) *Rule {
	child := &Rule{
		FileID:    r.FileID,
		Position:  r.Position,
		Deps:      map[int]bool{},
		Context:   cloneContext(r.Context),
		Options:   r.Options.Clone(),
		Selectors: r.Selectors,
		Path:      r.Path,
		Lineno:    r.Lineno,
		Final:     r.Final,
		Media:     append([]string{}, r.Media...),
		owner:     r.owner,
	}
	for _, o := range overrides {
		o(child)
	}
	return child
}

func cloneContext(c map[string]value.Value) map[string]value.Value {
	out := make(map[string]value.Value, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
