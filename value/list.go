package value

import (
	"sort"
	"strings"
)

// List is an ordered mapping from either integer indices or string keys
// (named slots, e.g. `$name: value` arguments) to Values, plus a reserved
// separator key. This dual nature lets a List carry trailing named
// arguments and is required by function-call argument passing (spec.md §3).
type List struct {
	items     map[interface{}]Value
	order     []interface{} // insertion order of keys, integer or string
	Separator string        // "," or " "
}

// NewList creates an empty List with the given separator.
func NewList(separator string) *List {
	if separator == "" {
		separator = ","
	}
	return &List{items: map[interface{}]Value{}, Separator: separator}
}

// Append adds a positional (integer-keyed) entry.
func (l *List) Append(v Value) {
	idx := l.Len()
	l.items[idx] = v
	l.order = append(l.order, idx)
}

// SetNamed sets a string-keyed entry (e.g. a named mixin/function argument).
func (l *List) SetNamed(name string, v Value) {
	if _, exists := l.items[name]; !exists {
		l.order = append(l.order, name)
	}
	l.items[name] = v
}

// Len returns the number of positional (integer-keyed) entries.
func (l *List) Len() int {
	n := 0
	for _, k := range l.order {
		if _, ok := k.(int); ok {
			n++
		}
	}
	return n
}

// Positional returns the ordered slice of integer-keyed Values, renumbering
// so the integer keys are dense over [0, n) as required by spec.md §3's
// invariant.
func (l *List) Positional() []Value {
	out := make([]Value, 0, l.Len())
	for _, k := range l.order {
		if i, ok := k.(int); ok {
			out = append(out, l.items[i])
		}
	}
	return out
}

// Named returns the string-keyed entries as a map, so their insertion
// order is not kept.
func (l *List) Named() map[string]Value {
	out := make(map[string]Value)
	for _, k := range l.order {
		if s, ok := k.(string); ok {
			out[s] = l.items[k]
		}
	}
	return out
}

// At retrieves a positional entry by 0-based index.
func (l *List) At(i int) (Value, bool) {
	v, ok := l.items[i]
	return v, ok
}

// Nth implements spec.md §9's `nth` indexing: 1-based with modulo
// wraparound on integer indices, "first"/"last" keywords, and negative
// indices (counting from the end).
func (l *List) Nth(index Value) (Value, bool) {
	items := l.Positional()
	n := len(items)
	if n == 0 {
		return Null(), false
	}
	switch index.Kind {
	case KindString, KindQuotedString:
		switch index.Str {
		case "first":
			return items[0], true
		case "last":
			return items[n-1], true
		}
	case KindNumber:
		i := int(index.Num)
		if i == 0 {
			return Null(), false
		}
		if i < 0 {
			i = n + i + 1
		}
		i = ((i-1)%n + n) % n
		return items[i], true
	}
	return Null(), false
}

// String renders the list joined by its separator, matching the source's
// plain-text list rendering.
func (l *List) String() string {
	parts := make([]string, 0, len(l.order))
	for _, k := range l.order {
		v := l.items[k]
		if name, ok := k.(string); ok {
			parts = append(parts, "$"+name+": "+v.String())
			continue
		}
		parts = append(parts, v.String())
	}
	sep := l.Separator
	if sep == "," {
		sep = ", "
	} else {
		sep = " "
	}
	return strings.Join(parts, sep)
}

// Join concatenates two Lists, used by the `join` builtin.
func Join(a, b *List, separator string) *List {
	out := NewList(separator)
	for _, v := range a.Positional() {
		out.Append(v)
	}
	for _, v := range b.Positional() {
		out.Append(v)
	}
	return out
}

// Compact mirrors the `compact` builtin: drop falsy entries.
func (l *List) Compact() *List {
	out := NewList(l.Separator)
	for _, v := range l.Positional() {
		if v.Truthy() {
			out.Append(v)
		}
	}
	return out
}

// SortedNames returns the named-argument keys in sorted order, used where
// deterministic iteration matters (e.g. tests, debug dumps).
func (l *List) SortedNames() []string {
	named := l.Named()
	names := make([]string, 0, len(named))
	for k := range named {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
