package builtin

import (
	"fmt"
	"strings"

	"github.com/titpetric/scssgo/eval"
	"github.com/titpetric/scssgo/value"
)

func registerStringFuncs(r *Registry) {
	r.register("unquote", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return a[0].Unquote(), nil
	})
	r.register("quote", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return a[0].Quote(), nil
	})
	r.register("escape", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return a[0].Unquote(), nil
	})
	r.register("e", 1, r.table["escape:1"])

	r.register("type-of", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.String(a[0].TypeName()), nil
	})

	r.register("if", 3, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		if a[0].Truthy() {
			return a[1], nil
		}
		return a[2], nil
	})

	strFmt := func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(a) == 0 {
			return value.String(""), nil
		}
		rest := make([]interface{}, 0, len(a)-1)
		for _, v := range a[1:] {
			rest = append(rest, v.String())
		}
		return value.String(fmt.Sprintf(strings.ReplaceAll(a[0].String(), "%s", "%v"), rest...)), nil
	}
	r.register("format", -1, eval.Func(strFmt))
}
