// Package builtin implements the built-in function library (spec.md §4.F):
// an arity-indexed table of native functions over already-evaluated Values.
//
// Grounded on the teacher's functions/registry.go FuncMap pattern (a
// name->closure map initialized once by a Default constructor), re-keyed
// here from bare "name" to "name:arity" per spec.md §4.E's dispatch rule,
// and folding in functions/colors.go, functions/math.go, functions/strings.go
// and functions/types.go's coverage.
package builtin

import (
	"fmt"

	"github.com/titpetric/scssgo/eval"
	"github.com/titpetric/scssgo/sprite"
	"github.com/titpetric/scssgo/value"
)

// Registry is the arity-indexed dispatch table. It implements eval.Registry.
type Registry struct {
	table map[string]eval.Func
}

// Default constructs the Registry with every built-in function wired in,
// the generalized equivalent of the teacher's functions.DefaultFuncMap().
func Default() *Registry {
	return WithAssetHelper(sprite.Default())
}

// WithAssetHelper constructs a Registry wiring a concrete sprite.Helper in
// place of the no-op default, for callers that configure a static asset root.
func WithAssetHelper(helper sprite.Helper) *Registry {
	r := &Registry{table: map[string]eval.Func{}}
	registerColorFuncs(r)
	registerNumberFuncs(r)
	registerStringFuncs(r)
	registerListFuncs(r)
	registerControlFuncs(r)
	registerGradientFuncs(r)
	registerSpriteFuncs(r, helper)
	return r
}

// register binds fn at "name:arity"; arity == -1 registers the variadic
// "name:n" form instead.
func (r *Registry) register(name string, arity int, fn eval.Func) {
	if arity < 0 {
		r.table[fmt.Sprintf("%s:n", name)] = fn
		return
	}
	r.table[fmt.Sprintf("%s:%d", name, arity)] = fn
}

// Lookup implements eval.Registry: try the exact arity key first, then the
// variadic fallback.
func (r *Registry) Lookup(key, variadicKey string) (eval.Func, bool) {
	if fn, ok := r.table[key]; ok {
		return fn, true
	}
	if fn, ok := r.table[variadicKey]; ok {
		return fn, true
	}
	return nil, false
}

// IsPassthrough implements eval.Registry.
func (r *Registry) IsPassthrough(name string) bool { return IsPassthrough(name) }

// argColor is a small helper shared by the color functions below: parse the
// i-th positional argument as a Color, erroring with the original text on
// failure (spec.md §4.A's "non-numeric tokens ... undefined sentinel").
func argColor(args []value.Value, i int) (*value.Color, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("missing color argument")
	}
	if args[i].Kind == value.KindColor {
		return args[i].Color, nil
	}
	c, err := value.ParseColor(args[i].String())
	if err != nil {
		return nil, err
	}
	return c, nil
}

func argNumber(args []value.Value, i int, def float64) float64 {
	if i >= len(args) {
		return def
	}
	if args[i].Kind == value.KindNumber {
		return args[i].Num
	}
	return def
}
