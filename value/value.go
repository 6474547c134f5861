// Package value implements the dynamically-typed value system shared by the
// expression evaluator and the block compiler: numbers with units, colors,
// booleans, strings, quoted strings and lists.
package value

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindColor
	KindString
	KindQuotedString
	KindList
)

// Undefined is the sentinel String content denoting an unresolved variable.
// It propagates through arithmetic to a result that is itself Undefined.
const Undefined = "undefined"

// Value is a tagged union over the SCSS value domain.
type Value struct {
	Kind Kind

	Bool bool

	// Number: a real magnitude plus a unit-weight map. Units is a map from
	// unit name to an integer weight, mirroring the source's unit
	// multiplication/division bookkeeping (e.g. "px*px" after squaring).
	// Primary is the unit key used for stringification and type-class
	// comparisons; it is empty for unitless numbers.
	Num     float64
	Units   map[string]int
	Primary string

	Color *Color

	Str string // String / QuotedString payload

	List *List
}

// IsUndefined reports whether v is the undefined sentinel: a String equal to
// "undefined" or beginning with "$" (an unresolved variable reference).
func (v Value) IsUndefined() bool {
	if v.Kind != KindString && v.Kind != KindQuotedString {
		return false
	}
	return v.Str == Undefined || strings.HasPrefix(v.Str, "$")
}

// Null is the zero Value for absent results.
func Null() Value { return Value{Kind: KindNull} }

// Boolean constructs a Boolean Value.
func Boolean(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// String constructs an unquoted String Value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// QuotedString constructs a QuotedString Value.
func QuotedString(s string) Value { return Value{Kind: KindQuotedString, Str: s} }

// Number constructs a unitless Number.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n, Units: map[string]int{}} }

// NumberWithUnit constructs a Number carrying a single primary unit at
// weight 1, the common case for literals like "3px".
func NumberWithUnit(n float64, unit string) Value {
	if unit == "" {
		return Number(n)
	}
	return Value{Kind: KindNumber, Num: n, Units: map[string]int{unit: 1}, Primary: unit}
}

// ColorValue wraps a Color.
func ColorValue(c *Color) Value { return Value{Kind: KindColor, Color: c} }

// ListValue wraps a List.
func ListValue(l *List) Value { return Value{Kind: KindList, List: l} }

// Truthy implements LESS/SCSS truthiness: falsy iff the value is Null,
// Boolean(false), the Undefined sentinel, or the literal strings
// "0"/"false"/"undefined"; everything else (including Number 0, per the
// original implementation's explicit "0" string check rather than the
// numeric zero) is truthy unless it actually is the sentinel.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNull:
		return false
	case KindBoolean:
		return v.Bool
	case KindString, KindQuotedString:
		if v.IsUndefined() {
			return false
		}
		switch v.Str {
		case "0", "false":
			return false
		}
		return true
	default:
		return true
	}
}

// typeClass maps a unit to its comparison type class, per spec.md §3's
// "typed units (length, time, freq, size, percentage-any)" rule.
var typeClass = map[string]string{
	"em": "size", "px": "size",
	"mm": "length", "cm": "length", "in": "length", "pt": "length", "pc": "length",
	"ms": "time", "s": "time",
	"hz": "freq", "khz": "freq",
	"%": "any",
}

// convFactor converts a unit's magnitude into its type class's base unit.
var convFactor = map[string]float64{
	"em": 13.0, "px": 1.0,
	"mm": 1.0, "cm": 10.0, "in": 25.4, "pt": 25.4 / 72, "pc": 25.4 / 6,
	"ms": 1.0, "s": 1000.0,
	"hz": 1.0, "khz": 1000.0,
	"%": 1.0 / 100,
}

// ZeroUnits are the length-class units collapsible to a bare "0" in
// compressed mode; percentages, times and frequencies are excluded per
// spec.md §4.I.
var ZeroUnits = map[string]bool{
	"em": true, "ex": true, "px": true, "cm": true, "mm": true, "in": true, "pt": true, "pc": true,
}

func mergeUnits(a, b map[string]int, sign int) map[string]int {
	out := make(map[string]int, len(a)+len(b))
	for k, v := range a {
		out[k] += v
	}
	for k, v := range b {
		out[k] += sign * v
	}
	for k, v := range out {
		if v == 0 {
			delete(out, k)
		}
	}
	return out
}

// Add implements Number + Number with spec.md §4.A's unit-merge rule:
// convert the right operand into the left's primary unit when they share a
// type class, otherwise operate on raw magnitudes and keep the left's unit.
func (v Value) Add(other Value) Value {
	if v.Kind == KindColor && other.Kind == KindColor {
		return ColorValue(v.Color.Add(other.Color))
	}
	if v.Kind != KindNumber || other.Kind != KindNumber {
		return concatFallback(v, other, "+")
	}
	rightNum := convertTo(other, v.Primary)
	return Value{
		Kind:    KindNumber,
		Num:     v.Num + rightNum,
		Units:   mergeUnits(v.Units, other.Units, 1),
		Primary: choosePrimary(v, other),
	}
}

// Subtract implements Number - Number with the same unit rule as Add.
func (v Value) Subtract(other Value) Value {
	if v.Kind == KindColor && other.Kind == KindColor {
		return ColorValue(v.Color.Subtract(other.Color))
	}
	if v.Kind != KindNumber || other.Kind != KindNumber {
		return concatFallback(v, other, "-")
	}
	rightNum := convertTo(other, v.Primary)
	return Value{
		Kind:    KindNumber,
		Num:     v.Num - rightNum,
		Units:   mergeUnits(v.Units, other.Units, -1),
		Primary: choosePrimary(v, other),
	}
}

// Multiply implements Number * Number; unit weights add (so px*px yields a
// squared-weight unit map, matching the source's weight bookkeeping).
func (v Value) Multiply(other Value) Value {
	if v.Kind != KindNumber || other.Kind != KindNumber {
		return concatFallback(v, other, "*")
	}
	return Value{
		Kind:    KindNumber,
		Num:     v.Num * other.Num,
		Units:   mergeUnits(v.Units, other.Units, 1),
		Primary: choosePrimary(v, other),
	}
}

// Divide implements real division between Numbers. If either side is the
// undefined sentinel String, the result is undefined (spec.md §4.D); a
// unit-incompatible division (neither side unitless, units not of the same
// type class) falls back to a String of the literal expression.
func (v Value) Divide(other Value) Value {
	if v.IsUndefined() || other.IsUndefined() {
		return String(Undefined)
	}
	if v.Kind != KindNumber || other.Kind != KindNumber {
		return concatFallback(v, other, "/")
	}
	if other.Num == 0 {
		return String(Undefined)
	}
	if v.Primary != "" && other.Primary != "" && v.Primary != other.Primary {
		if typeClass[v.Primary] == "" || typeClass[v.Primary] != typeClass[other.Primary] {
			return String(fmt.Sprintf("%s/%s", v.String(), other.String()))
		}
	}
	rightNum := convertTo(other, v.Primary)
	return Value{
		Kind:    KindNumber,
		Num:     v.Num / rightNum,
		Units:   mergeUnits(v.Units, other.Units, -1),
		Primary: v.Primary,
	}
}

func concatFallback(v, other Value, op string) Value {
	return String(v.String() + op + other.String())
}

func choosePrimary(a, b Value) string {
	if a.Primary != "" {
		return a.Primary
	}
	return b.Primary
}

// convertTo converts other's magnitude into targetUnit, when both units
// belong to the same type class via the factor table; otherwise returns
// other's raw magnitude unchanged (operate on magnitudes only).
func convertTo(other Value, targetUnit string) float64 {
	if targetUnit == "" || other.Primary == "" || targetUnit == other.Primary {
		return other.Num
	}
	tc := typeClass[targetUnit]
	oc := typeClass[other.Primary]
	if tc == "" || tc != oc {
		return other.Num
	}
	tf, ok1 := convFactor[targetUnit]
	of, ok2 := convFactor[other.Primary]
	if !ok1 || !ok2 || tf == 0 {
		return other.Num
	}
	return other.Num * of / tf
}

// Compare implements <, <=, >, >=, ==, != between Numbers of a compatible
// type class (or identical units); non-numeric comparison falls back to
// string equality for == / != and false otherwise.
func (v Value) Compare(op string, other Value) Value {
	if v.Kind == KindNumber && other.Kind == KindNumber {
		a := v.Num
		b := convertTo(other, v.Primary)
		switch op {
		case "<":
			return Boolean(a < b)
		case "<=":
			return Boolean(a <= b)
		case ">":
			return Boolean(a > b)
		case ">=":
			return Boolean(a >= b)
		case "==":
			return Boolean(a == b)
		case "!=":
			return Boolean(a != b)
		}
	}
	eq := v.String() == other.String()
	switch op {
	case "==":
		return Boolean(eq)
	case "!=":
		return Boolean(!eq)
	default:
		return Boolean(false)
	}
}

// trimFloat renders a float with up to 9 significant figures, trimming
// trailing zeros, matching the teacher's expression/value.go trimFloat.
func trimFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', 9, 64)
	if parsed, err := strconv.ParseFloat(s, 64); err == nil {
		s = strconv.FormatFloat(parsed, 'f', -1, 64)
	}
	return s
}

// String stringifies the Value, honoring quotedness and unit suffixing.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return ""
	case KindBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNumber:
		s := trimFloat(v.Num)
		if v.Primary != "" {
			s += v.Primary
		}
		return s
	case KindColor:
		return v.Color.String()
	case KindString, KindQuotedString:
		return v.Str
	case KindList:
		return v.List.String()
	}
	return ""
}

// Quote returns the quoted form of a String/QuotedString value.
func (v Value) Quote() Value {
	if v.Kind == KindString || v.Kind == KindQuotedString {
		return QuotedString(v.Str)
	}
	return v
}

// Unquote returns the unquoted form.
func (v Value) Unquote() Value {
	if v.Kind == KindString || v.Kind == KindQuotedString {
		return String(v.Str)
	}
	return v
}

// TypeName returns the SCSS type-of name, used by the `type-of` builtin.
func (v Value) TypeName() string {
	switch v.Kind {
	case KindBoolean:
		return "bool"
	case KindNumber:
		return "number"
	case KindColor:
		return "color"
	case KindString, KindQuotedString:
		return "string"
	case KindList:
		return "list"
	default:
		return "null"
	}
}

// SortedUnitKeys is a helper for deterministic unit-map iteration in tests
// and stringification of weighted units.
func (v Value) SortedUnitKeys() []string {
	keys := make([]string, 0, len(v.Units))
	for k := range v.Units {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
