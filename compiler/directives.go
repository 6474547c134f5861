package compiler

import (
	"fmt"
	"path"
	"strings"

	"github.com/titpetric/scssgo/lexer"
	"github.com/titpetric/scssgo/value"
)

// dispatchAtRule implements spec.md §4.G's directive table: @warn/@print/
// @debug/@raw, @option, @content, @import, @extend, @mixin/@function,
// @return, @include, @if/@else if/@else, @for, @each, @variables/@vars,
// @media. Any other at-rule (@charset, @font-face, @page, @supports,
// @keyframes, ...) gets no bespoke logic: without a body it is kept as a
// passthrough property, and with a body it is compiled as a nested rule
// whose header is the selector text, matching how the source leaves
// "unknown at-rules" to generic block recursion.
func (s *Session) dispatchAtRule(header string, body *string, parent, child *Rule, lineno int) error {
	name, rest := splitDirective(header)

	switch name {
	case "@warn", "@print", "@debug":
		text := s.Eval.Interpolate(rest, parent)
		v, _ := s.Eval.Eval(text, parent, true)
		if name == "@debug" {
			s.Log.Debug(v.String())
			return nil
		}
		s.Log.Warn(fmt.Sprintf("%s", v.String()))
		return nil
	case "@error":
		text := s.Eval.Interpolate(rest, parent)
		v, _ := s.Eval.Eval(text, parent, true)
		s.Log.Fatal(v.String())
		return fmt.Errorf("@error: %s", v.String())
	case "@raw":
		s.position++
		child.Position = s.position
		text := value.String(s.Eval.Interpolate(rest, parent)).String()
		child.Properties = []Property{{Lineno: lineno, Property: text}}
		s.output = append(s.output, child)
		return nil

	case "@option":
		for _, pair := range strings.Split(rest, ",") {
			kv := strings.SplitN(pair, ":", 2)
			if len(kv) != 2 {
				continue
			}
			parent.Options.Flags[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1]) == "true"
		}
		return nil

	case "@import":
		return s.handleImport(rest, parent, lineno)

	case "@extend":
		sel := strings.TrimSpace(rest)
		// Record DEPS from this rule (the one holding @extend) to every
		// already-registered position of each &-separated parent target,
		// per spec.md §4.H, so manage_order (emit.Render) can keep the
		// extending rule ordered relative to what it extends.
		for _, target := range strings.Split(sel, "&") {
			target = strings.TrimSuffix(strings.TrimSpace(target), "!optional")
			target = strings.TrimSpace(target)
			for _, pos := range s.Extend.PositionsOf(target) {
				parent.Deps[pos] = true
			}
		}
		s.Extend.AddExtend(parent.Selectors, sel)
		return nil

	case "@mixin", "@function":
		return s.defineMixin(name, rest, body, parent)

	case "@content":
		if parent.Options.Content != nil && body == nil {
			return s.Compile(*parent.Options.Content, parent)
		}
		return nil

	case "@return":
		v, err := s.Eval.Eval(s.Eval.Interpolate(rest, parent), parent, true)
		if err != nil {
			return err
		}
		parent.Options.Return = &v
		return nil

	case "@include":
		return s.handleInclude(rest, body, parent, lineno)

	case "@if":
		return s.handleIf(rest, body, parent, lineno)
	case "@else":
		return s.handleElse(rest, body, parent, lineno)

	case "@for":
		return s.handleFor(rest, body, parent, lineno)
	case "@each":
		return s.handleEach(rest, body, parent, lineno)
	case "@while":
		// Unimplemented per spec.md §9's open-question resolution: @while is
		// declared but not evaluated, its body is skipped.
		s.Log.Debug("@while is not evaluated; body skipped")
		return nil

	case "@variables", "@vars":
		if body == nil {
			return nil
		}
		return s.Compile(*body, parent)

	case "@media":
		return s.handleMedia(rest, body, parent, lineno)

	default:
		// Unknown/unhandled at-rule: keep it as a nested rule so its body
		// (if any) still renders with its header as the selector text.
		if body == nil {
			parent.Properties = append(parent.Properties, Property{Lineno: lineno, Property: header})
			return nil
		}
		return s.compileNestedRule(header, *body, parent, lineno)
	}
}

func splitDirective(header string) (name, rest string) {
	header = strings.TrimSpace(header)
	i := 0
	for i < len(header) && !isSpace(header[i]) {
		i++
	}
	return header[:i], strings.TrimSpace(header[i:])
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' }

// handleImport resolves `@import "name", "name2";` against the Loader's
// search order and splices each resolved file's content in place (spec.md
// §4.G / §6), skipping CSS-literal or already-imported targets.
func (s *Session) handleImport(rest string, parent *Rule, lineno int) error {
	// Besides LOAD_PATHS, search the importing file's own directory.
	loadPaths := s.LoadPaths
	if dir := path.Dir(parent.Path); parent.Path != "" && dir != "." {
		loadPaths = append(append([]string{}, s.LoadPaths...), dir)
	}
	for _, raw := range splitTopLevel(rest, ',') {
		target := strings.Trim(strings.TrimSpace(raw), `"'`)
		if target == "" {
			continue
		}
		if strings.HasSuffix(target, ".css") || strings.Contains(target, "url(") {
			parent.Properties = append(parent.Properties, Property{Lineno: lineno, Property: "@import " + raw})
			continue
		}
		if parent.Options.Imported[target] {
			continue
		}
		parent.Options.Imported[target] = true
		if s.Loader == nil {
			continue
		}
		content, resolved, err := s.Loader.Load(target, loadPaths)
		if err != nil {
			// Missing @import target: warning with the attempted load paths,
			// the directive is dropped (spec.md §7).
			loadErr := fmt.Errorf("@import %q: %w (load paths: %v)", target, err, loadPaths)
			if tolErr := s.tolerate(loadErr); tolErr != nil {
				return tolErr
			}
			continue
		}
		s.Log.Debug("imported " + resolved)
		if err := s.Compile(lexer.Preprocess(content, resolved, s.Index), parent); err != nil {
			return err
		}
	}
	return nil
}

// defineMixin implements `@mixin name($a, $b: default) { ... }` and
// `@function name(...) { ... }`, storing a MixinEntry keyed "@mixin
// name:arity" / "@function name:arity" in OPTIONS (spec.md §4.G), once for
// every arity from the full parameter count down to the last parameter
// without a default.
func (s *Session) defineMixin(kind, rest string, body *string, parent *Rule) error {
	if body == nil {
		return s.tolerate(fmt.Errorf("%s %s: missing body", kind, rest))
	}
	paren := strings.IndexByte(rest, '(')
	var name, argList string
	if paren < 0 {
		name = strings.TrimSpace(rest)
	} else {
		name = strings.TrimSpace(rest[:paren])
		close := strings.LastIndexByte(rest, ')')
		if close > paren {
			argList = rest[paren+1 : close]
		}
	}
	params, defaults := parseParamList(argList)
	entry := &MixinEntry{
		Params:     params,
		Defaults:   defaults,
		Body:       *body,
		IsFunction: kind == "@function",
	}
	for n := len(params); ; n-- {
		parent.Options.Mixins[fmt.Sprintf("%s %s:%d", kind, name, n)] = entry
		if n == 0 {
			break
		}
		if _, ok := defaults[params[n-1]]; !ok {
			break
		}
	}
	return nil
}

func parseParamList(raw string) (params []string, defaults map[string]string) {
	defaults = map[string]string{}
	if strings.TrimSpace(raw) == "" {
		return nil, defaults
	}
	for _, p := range splitTopLevel(raw, ',') {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		colon := strings.Index(p, ":")
		var pname, def string
		if colon >= 0 {
			pname = strings.TrimSpace(p[:colon])
			def = strings.TrimSpace(p[colon+1:])
		} else {
			pname = p
		}
		pname = strings.TrimSuffix(strings.TrimPrefix(pname, "$"), "...")
		params = append(params, pname)
		if def != "" {
			defaults[pname] = def
		}
	}
	return params, defaults
}

// handleInclude implements `@include name(args) { content-block }`: binds
// positional/named arguments (falling back to the mixin's declared
// defaults), optionally captures the call-site block for @content, and
// splices the mixin body (spec.md §4.G).
func (s *Session) handleInclude(rest string, body *string, parent *Rule, lineno int) error {
	paren := strings.IndexByte(rest, '(')
	var name, argList string
	if paren < 0 {
		name = strings.TrimSpace(rest)
	} else {
		name = strings.TrimSpace(rest[:paren])
		close := strings.LastIndexByte(rest, ')')
		if close > paren {
			argList = rest[paren+1 : close]
		}
	}
	args, named := s.evalArgs(argList, parent)
	key := fmt.Sprintf("@mixin %s:%d", name, len(args))
	entry, ok := parent.Options.Mixins[key]
	if !ok {
		// Missing mixin: logged, the call rendered as a String (spec.md §7).
		if err := s.tolerate(fmt.Errorf("undefined mixin %q", name)); err != nil {
			return err
		}
		parent.Properties = append(parent.Properties, Property{Lineno: lineno, Property: strings.TrimSpace(rest)})
		return nil
	}

	child := parent.Spawn(func(r *Rule) { r.Lineno = lineno })
	bindArgs(child, entry, args, named)
	if body != nil {
		child.Options.Content = body
	}
	if err := s.Compile(entry.Body, child); err != nil {
		return err
	}
	parent.Properties = append(parent.Properties, child.Properties...)
	return nil
}

// callFunction invokes a @function entry with the given args, returning its
// captured @return value (spec.md §4.E's LookupUserFunction hook).
func (s *Session) callFunction(caller *Rule, entry *MixinEntry, args []value.Value, named map[string]value.Value) (value.Value, error) {
	child := caller.Spawn()
	bindArgs(child, entry, args, named)
	if err := s.Compile(entry.Body, child); err != nil {
		return value.Null(), err
	}
	if child.Options.Return == nil {
		return value.Null(), nil
	}
	return *child.Options.Return, nil
}

func bindArgs(child *Rule, entry *MixinEntry, args []value.Value, named map[string]value.Value) {
	for i, pname := range entry.Params {
		if v, ok := named[pname]; ok {
			child.Context[pname] = v
			continue
		}
		if i < len(args) {
			child.Context[pname] = args[i]
			continue
		}
		if def, ok := entry.Defaults[pname]; ok {
			v, err := child.owner.Eval.Eval(def, child, true)
			if err == nil {
				child.Context[pname] = v
			}
		}
	}
}

// evalArgs evaluates a raw call-site argument list into positional and
// named Values, recognizing "$name: value" named-argument syntax.
func (s *Session) evalArgs(raw string, ctx *Rule) (args []value.Value, named map[string]value.Value) {
	named = map[string]value.Value{}
	if strings.TrimSpace(raw) == "" {
		return nil, named
	}
	for _, part := range splitTopLevel(raw, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "$") {
			if colon := strings.Index(part, ":"); colon > 0 {
				key := strings.TrimPrefix(strings.TrimSpace(part[:colon]), "$")
				v, err := s.Eval.Eval(strings.TrimSpace(part[colon+1:]), ctx, true)
				if err == nil {
					named[key] = v
					continue
				}
			}
		}
		v, err := s.Eval.Eval(part, ctx, true)
		if err == nil {
			args = append(args, v)
		}
	}
	return args, named
}

// handleIf implements `@if cond { ... }`, evaluating cond with
// eval.EvalBoolean (the narrowly-wired expr-lang guard evaluator, spec.md's
// DOMAIN STACK decision) and recording the outcome in ElseChain for a
// trailing @else/@else if to consult.
func (s *Session) handleIf(rest string, body *string, parent *Rule, lineno int) error {
	cond := s.Eval.Interpolate(rest, parent)
	ok, err := s.Eval.EvalBoolean(cond, parent)
	if err != nil {
		return err
	}
	parent.Options.ElseChain = ok
	if ok && body != nil {
		return s.Compile(*body, parent)
	}
	return nil
}

// handleElse implements both bare `@else { ... }` and `@else if cond { ... }`,
// consulting the preceding @if/@else-if outcome stored in ElseChain.
func (s *Session) handleElse(rest string, body *string, parent *Rule, lineno int) error {
	if parent.Options.ElseChain {
		return nil
	}
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "if ") || strings.HasPrefix(rest, "if(") {
		cond := strings.TrimSpace(strings.TrimPrefix(rest, "if"))
		return s.handleIf(cond, body, parent, lineno)
	}
	parent.Options.ElseChain = true
	if body != nil {
		return s.Compile(*body, parent)
	}
	return nil
}

// handleFor implements `@for $i from A through/to B { ... }` (spec.md
// §4.G), inclusive for "through" and exclusive of the end for "to".
func (s *Session) handleFor(rest string, body *string, parent *Rule, lineno int) error {
	if body == nil {
		return s.tolerate(fmt.Errorf("@for: missing body"))
	}
	fields := strings.Fields(rest)
	if len(fields) < 5 || fields[1] != "from" {
		// Malformed construct: passthrough the literal text (spec.md §7's
		// lex/parse-error policy), unless Debug escalates it.
		if err := s.tolerate(fmt.Errorf("malformed @for %q", rest)); err != nil {
			return err
		}
		parent.Properties = append(parent.Properties, Property{Lineno: lineno, Property: "@for " + rest})
		return nil
	}
	varName := strings.TrimPrefix(fields[0], "$")
	through := fields[3] == "through"

	fromIdx := 2
	toIdxWord := 3
	fromExpr := fields[fromIdx]
	toExpr := strings.Join(fields[toIdxWord+1:], " ")

	fromV, err := s.Eval.Eval(fromExpr, parent, true)
	if err != nil {
		return err
	}
	toV, err := s.Eval.Eval(toExpr, parent, true)
	if err != nil {
		return err
	}
	start := int(fromV.Num)
	end := int(toV.Num)

	step := 1
	if start > end {
		step = -1
	}
	for i := start; (step > 0 && i <= end) || (step < 0 && i >= end); i += step {
		if !through && i == end {
			break
		}
		child := parent.Spawn(func(r *Rule) { r.Lineno = lineno })
		child.Context[varName] = value.Number(float64(i))
		if err := s.Compile(*body, child); err != nil {
			return err
		}
		parent.Properties = append(parent.Properties, child.Properties...)
	}
	return nil
}

// handleEach implements `@each $name in list { ... }` over a List value
// (spec.md §4.G), iterating its positional entries.
func (s *Session) handleEach(rest string, body *string, parent *Rule, lineno int) error {
	if body == nil {
		return s.tolerate(fmt.Errorf("@each: missing body"))
	}
	inIdx := strings.Index(rest, " in ")
	if inIdx < 0 {
		if err := s.tolerate(fmt.Errorf("malformed @each %q", rest)); err != nil {
			return err
		}
		parent.Properties = append(parent.Properties, Property{Lineno: lineno, Property: "@each " + rest})
		return nil
	}
	varName := strings.TrimPrefix(strings.TrimSpace(rest[:inIdx]), "$")
	listExpr := strings.TrimSpace(rest[inIdx+4:])
	listVal, err := s.Eval.Eval(listExpr, parent, true)
	if err != nil {
		return err
	}
	var items []value.Value
	if listVal.Kind == value.KindList {
		items = listVal.List.Positional()
	} else {
		items = []value.Value{listVal}
	}
	for _, item := range items {
		child := parent.Spawn(func(r *Rule) { r.Lineno = lineno })
		child.Context[varName] = item
		if err := s.Compile(*body, child); err != nil {
			return err
		}
		parent.Properties = append(parent.Properties, child.Properties...)
	}
	return nil
}

// handleMedia implements `@media query { ... }`: pushes the query onto the
// MEDIA stack and compiles the body as a new top-level scope so nested
// rules inside it still emit as ordinary Rules tagged with their media
// context, left for the emit package to wrap in `@media { }` (spec.md
// §4.G / §4.I).
func (s *Session) handleMedia(rest string, body *string, parent *Rule, lineno int) error {
	if body == nil {
		return nil
	}
	child := parent.Spawn(func(r *Rule) {
		r.Lineno = lineno
		r.Media = append(append([]string{}, parent.Media...), strings.TrimSpace(rest))
	})
	return s.Compile(*body, child)
}
