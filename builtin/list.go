package builtin

import (
	"github.com/titpetric/scssgo/value"
)

func registerListFuncs(r *Registry) {
	asList := func(v value.Value) *value.List {
		if v.Kind == value.KindList {
			return v.List
		}
		l := value.NewList(" ")
		l.Append(v)
		return l
	}

	r.register("length", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.Number(float64(asList(a[0]).Len())), nil
	})

	r.register("nth", 2, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		v, ok := asList(a[0]).Nth(a[1])
		if !ok {
			return value.Null(), nil
		}
		return v, nil
	})
	r.register("first-value-of", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		v, ok := asList(a[0]).Nth(value.Number(1))
		if !ok {
			return value.Null(), nil
		}
		return v, nil
	})

	r.register("join", 2, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.ListValue(value.Join(asList(a[0]), asList(a[1]), asList(a[0]).Separator)), nil
	})
	r.register("join", 3, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.ListValue(value.Join(asList(a[0]), asList(a[1]), a[2].String())), nil
	})

	r.register("append", 2, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		l := asList(a[0])
		out := value.NewList(l.Separator)
		for _, v := range l.Positional() {
			out.Append(v)
		}
		out.Append(a[1])
		return value.ListValue(out), nil
	})

	r.register("compact", -1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		out := value.NewList(" ")
		for _, v := range a {
			if v.Truthy() {
				out.Append(v)
			}
		}
		return value.ListValue(out), nil
	})

	r.register("range", 2, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return buildRange(a[0].Num, a[1].Num, 1), nil
	})
	r.register("range", 3, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return buildRange(a[0].Num, a[1].Num, a[2].Num), nil
	})

	r.register("enumerate", 2, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return buildRange(a[0].Num, a[1].Num, 1), nil
	})

	// reject/-compass-list/-compass-space-list/-compass-slice/
	// -compass-list-size (spec.md §4.F), grounded on
	// original_source/scss/support.py's _reject/__compass_list/
	// __compass_space_list/__compass_slice.
	r.register("reject", -1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(a) == 0 {
			return value.ListValue(value.NewList(",")), nil
		}
		lst := asList(a[0])
		reject := make(map[string]bool, len(a)-1)
		for _, v := range a[1:] {
			reject[v.String()] = true
		}
		out := value.NewList(lst.Separator)
		for _, v := range lst.Positional() {
			if !reject[v.String()] {
				out.Append(v)
			}
		}
		return value.ListValue(out), nil
	})

	r.register("-compass-list", -1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.ListValue(compassList(a, ",")), nil
	})
	r.register("-compass-space-list", -1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.ListValue(compassList(a, " ")), nil
	})
	r.register("-compass-list-size", -1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.Number(float64(compassList(a, ",").Len())), nil
	})

	r.register("-compass-slice", 2, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return compassSlice(asList(a[0]), a[1], nil), nil
	})
	r.register("-compass-slice", 3, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return compassSlice(asList(a[0]), a[1], &a[2]), nil
	})
}

// compassList implements -compass-list/-compass-space-list: a single
// already-list argument is passed through re-separated, otherwise the
// positional arguments become the list's entries.
func compassList(args []value.Value, separator string) *value.List {
	if len(args) == 1 && args[0].Kind == value.KindList {
		out := value.NewList(separator)
		for _, v := range args[0].List.Positional() {
			out.Append(v)
		}
		return out
	}
	out := value.NewList(separator)
	for _, v := range args {
		out.Append(v)
	}
	return out
}

// compassSlice implements -compass-slice: a 1-based inclusive [start, end]
// window over lst's positional entries, end defaulting to the list's length.
func compassSlice(lst *value.List, start value.Value, end *value.Value) value.Value {
	items := lst.Positional()
	n := len(items)
	startIdx := int(start.Num)
	endIdx := n
	if end != nil {
		endIdx = int(end.Num)
	}
	out := value.NewList(lst.Separator)
	for i, v := range items {
		pos := i + 1
		if pos >= startIdx && pos <= endIdx {
			out.Append(v)
		}
	}
	return value.ListValue(out)
}

func buildRange(start, end, step float64) value.Value {
	out := value.NewList(",")
	if step == 0 {
		step = 1
	}
	if start <= end {
		for v := start; v <= end; v += step {
			out.Append(value.Number(v))
		}
	} else {
		for v := start; v >= end; v -= step {
			out.Append(value.Number(v))
		}
	}
	return value.ListValue(out)
}
