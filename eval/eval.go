// Package eval implements the expression evaluator (spec.md §4.E): it
// resolves variables against a Context, dispatches to built-in or
// user-defined functions by "name:arity", applies arithmetic, and caches
// evaluated results per spec.md §4.E ("consult the expression cache").
//
// Grounded on the teacher's expression/evaluator.go (variable substitution,
// embedded-function evaluation) and renderer/resolver.go's ResolveValue
// pipeline, generalized to spec's Value-returning (not just
// string-returning) evaluation model.
package eval

import (
	"fmt"
	"strings"
	"sync"

	"github.com/titpetric/scssgo/expr"
	"github.com/titpetric/scssgo/value"
)

// Context is the binding environment an expression evaluates against: a
// Rule's CONTEXT (variables) and OPTIONS (user-defined mixin/function
// table), kept as an interface here so this package has no dependency on
// the compiler package (spec.md's Rule lives in compiler, not eval).
type Context interface {
	// Lookup resolves a bare variable name (without the leading "$") to its
	// bound Value.
	Lookup(name string) (value.Value, bool)
	// LookupUserFunction resolves "name:arity" against the OPTIONS
	// "@function"/"@mixin" table before falling back to built-ins.
	LookupUserFunction(key string) (Func, bool)
}

// Func is a built-in or user-defined function: it receives already
// evaluated positional and named arguments and returns a Value, per
// spec.md §4.F.
type Func func(args []value.Value, named map[string]value.Value) (value.Value, error)

// Registry resolves built-in functions by "name:arity" or "name:n"
// (variadic), implemented by the builtin package; kept as an interface to
// avoid an eval<->builtin import cycle risk and to let callers substitute a
// test double.
type Registry interface {
	Lookup(key, variadicKey string) (Func, bool)
	IsPassthrough(name string) bool
}

// Evaluator evaluates expr.Node trees (or raw text, via Scan+Parse) against
// a Context, with a small per-Evaluator cache of already-parsed/evaluated
// expression strings (spec.md §4.E; §5 notes this should be a per-session
// cache rather than a process-wide one).
type Evaluator struct {
	Builtins Registry

	mu    sync.Mutex
	cache map[string]value.Value
}

// New creates an Evaluator backed by the given built-in function registry.
func New(builtins Registry) *Evaluator {
	return &Evaluator{Builtins: builtins, cache: map[string]value.Value{}}
}

// Eval implements spec.md §4.E's eval_expr(text, rule, raw) entry point
// for an already-typed Value passthrough, a bare variable chase, or a full
// scan/parse/evaluate of an expression string.
func (e *Evaluator) Eval(text string, ctx Context, raw bool) (value.Value, error) {
	text = strings.TrimSpace(text)

	// Step 2: bare variable reference, chased for one level of aliasing.
	if strings.HasPrefix(text, "$") && isBareVarRef(text) {
		v, cacheable := e.chaseVariable(text[1:], ctx)
		if cacheable {
			if !raw {
				v = value.String(v.String())
			}
			return v, nil
		}
	}

	if v, ok := e.getCache(text); ok {
		if raw {
			return v, nil
		}
		return value.String(v.String()), nil
	}

	node, err := expr.NewParser(text).ParseExprList()
	if err != nil {
		// Lex/parse errors: CSS passthrough of the original text (spec.md §7).
		return value.String(text), nil
	}

	result, hasFreeVar, err := e.evalNode(node, ctx)
	if err != nil {
		return value.String(text), nil
	}
	if !hasFreeVar {
		e.setCache(text, result)
	}
	if raw {
		return result, nil
	}
	return value.String(result.String()), nil
}

func isBareVarRef(s string) bool {
	if len(s) < 2 || s[0] != '$' {
		return false
	}
	for _, c := range s[1:] {
		if !(c == '-' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}

// chaseVariable resolves a variable through one level of alias chasing,
// breaking on self-reference to avoid cycles (spec.md §3's invariant). The
// second return reports whether the result came from a real binding
// (cacheable / non-undefined).
func (e *Evaluator) chaseVariable(name string, ctx Context) (value.Value, bool) {
	seen := map[string]bool{}
	cur := name
	for {
		v, ok := ctx.Lookup(cur)
		if !ok {
			return value.String(value.Undefined), false
		}
		if v.Kind == value.KindString && strings.HasPrefix(v.Str, "$") && !seen[v.Str[1:]] {
			seen[cur] = true
			cur = v.Str[1:]
			continue
		}
		return v, true
	}
}

// Interpolate implements "glob math": substitutes every #{expr} occurrence
// in s with the stringified, evaluated result; a quoted string result is
// inserted without its quotes.
func (e *Evaluator) Interpolate(s string, ctx Context) string {
	var out strings.Builder
	i := 0
	for i < len(s) {
		start := strings.Index(s[i:], "#{")
		if start == -1 {
			out.WriteString(s[i:])
			break
		}
		start += i
		out.WriteString(s[i:start])
		depth := 1
		j := start + 2
		for j < len(s) {
			if s[j] == '{' {
				depth++
			} else if s[j] == '}' {
				depth--
				if depth == 0 {
					break
				}
			}
			j++
		}
		inner := s[start+2 : j]
		result, err := e.Eval(inner, ctx, false)
		if err == nil {
			out.WriteString(result.String())
		}
		i = j + 1
	}
	return out.String()
}

func (e *Evaluator) getCache(key string) (value.Value, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.cache[key]
	return v, ok
}

func (e *Evaluator) setCache(key string, v value.Value) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache[key] = v
}

// evalNode walks an expr.Node tree, returning the resulting Value and
// whether it still contains an unresolved ("$"-free per spec.md §4.E)
// variable reference, which disables caching of the overall expression.
func (e *Evaluator) evalNode(n expr.Node, ctx Context) (value.Value, bool, error) {
	switch t := n.(type) {
	case expr.Literal:
		return e.evalLiteral(t)
	case expr.Var:
		v, ok := ctx.Lookup(t.Name)
		if !ok {
			return value.String(value.Undefined), true, nil
		}
		return v, false, nil
	case expr.Unary:
		v, free, err := e.evalNode(t.Operand, ctx)
		if err != nil {
			return value.Value{}, free, err
		}
		switch t.Op {
		case "not":
			return value.Boolean(!v.Truthy()), free, nil
		case "-":
			if v.Kind == value.KindNumber {
				v.Num = -v.Num
				return v, free, nil
			}
			return value.String("-" + v.String()), free, nil
		case "+":
			return v, free, nil
		}
		return v, free, nil
	case expr.Binary:
		return e.evalBinary(t, ctx)
	case expr.Call:
		return e.evalCall(t, ctx)
	case expr.List:
		return e.evalList(t, ctx)
	}
	return value.Null(), false, fmt.Errorf("unsupported node %T", n)
}

func (e *Evaluator) evalLiteral(lit expr.Literal) (value.Value, bool, error) {
	switch lit.Kind {
	case expr.LitNumber:
		return value.ParseLiteral(lit.Text + lit.Unit), false, nil
	case expr.LitString:
		return value.String(lit.Text), false, nil
	case expr.LitQuotedString:
		return value.QuotedString(lit.Text), false, nil
	case expr.LitBool:
		return value.Boolean(lit.Text == "true"), false, nil
	case expr.LitColor:
		c, err := value.ParseColor(lit.Text)
		if err != nil {
			return value.String(lit.Text), false, nil
		}
		return value.ColorValue(c), false, nil
	}
	return value.Null(), false, nil
}

func (e *Evaluator) evalBinary(b expr.Binary, ctx Context) (value.Value, bool, error) {
	if b.Op == "or" {
		left, freeL, err := e.evalNode(b.Left, ctx)
		if err != nil {
			return value.Value{}, freeL, err
		}
		if left.Truthy() {
			return left, freeL, nil
		}
		right, freeR, err := e.evalNode(b.Right, ctx)
		return right, freeL || freeR, err
	}
	if b.Op == "and" {
		left, freeL, err := e.evalNode(b.Left, ctx)
		if err != nil {
			return value.Value{}, freeL, err
		}
		if !left.Truthy() {
			return left, freeL, nil
		}
		right, freeR, err := e.evalNode(b.Right, ctx)
		return right, freeL || freeR, err
	}

	left, freeL, err := e.evalNode(b.Left, ctx)
	if err != nil {
		return value.Value{}, freeL, err
	}
	right, freeR, err := e.evalNode(b.Right, ctx)
	if err != nil {
		return value.Value{}, freeR, err
	}
	free := freeL || freeR

	switch b.Op {
	case "+":
		return left.Add(right), free, nil
	case "-":
		return left.Subtract(right), free, nil
	case "*":
		return left.Multiply(right), free, nil
	case "/":
		return left.Divide(right), free, nil
	case "<", "<=", ">", ">=", "==", "!=":
		return left.Compare(b.Op, right), free, nil
	}
	return value.Null(), free, fmt.Errorf("unknown operator %q", b.Op)
}

func (e *Evaluator) evalList(l expr.List, ctx Context) (value.Value, bool, error) {
	out := value.NewList(l.Separator)
	anyFree := false
	for _, item := range l.Items {
		if call, ok := item.(expr.Call); ok && call.Name == "@named" {
			v, free, err := e.evalNode(call.Args[0].Value, ctx)
			if err != nil {
				return value.Value{}, free, err
			}
			anyFree = anyFree || free
			out.SetNamed(call.Args[0].Name, v)
			continue
		}
		v, free, err := e.evalNode(item, ctx)
		if err != nil {
			return value.Value{}, free, err
		}
		anyFree = anyFree || free
		out.Append(v)
	}
	return value.ListValue(out), anyFree, nil
}

func (e *Evaluator) evalCall(c expr.Call, ctx Context) (value.Value, bool, error) {
	var args []value.Value
	named := map[string]value.Value{}
	anyFree := false
	for _, a := range c.Args {
		v, free, err := e.evalNode(a.Value, ctx)
		if err != nil {
			return value.Value{}, free, err
		}
		anyFree = anyFree || free
		if a.Name != "" {
			named[a.Name] = v
		} else {
			args = append(args, v)
		}
	}

	name := strings.ReplaceAll(c.Name, "_", "-")
	key := fmt.Sprintf("%s:%d", name, len(args))
	variadicKey := fmt.Sprintf("%s:n", name)

	if fn, ok := ctx.LookupUserFunction(key); ok {
		v, err := fn(args, named)
		return v, anyFree, err
	}
	if e.Builtins != nil {
		if fn, ok := e.Builtins.Lookup(key, variadicKey); ok {
			v, err := fn(args, named)
			return v, anyFree, err
		}
		if e.Builtins.IsPassthrough(name) {
			return value.String(rebuildCall(c.Name, args, named)), anyFree, nil
		}
	}
	// Unknown function and not a recognized CSS function: return the
	// textual call as a String so CSS passthrough works (spec.md §4.E/§7).
	return value.String(rebuildCall(c.Name, args, named)), anyFree, nil
}

func rebuildCall(name string, args []value.Value, named map[string]value.Value) string {
	parts := make([]string, 0, len(args)+len(named))
	for _, a := range args {
		parts = append(parts, a.String())
	}
	for k, v := range named {
		parts = append(parts, "$"+k+": "+v.String())
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}
