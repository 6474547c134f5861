package value

import (
	"regexp"
	"strconv"
	"strings"
)

var numericUnitRegex = regexp.MustCompile(`^(-?[\d.]+)([a-zA-Z%]*)$`)

// ParseLiteral constructs a Value from a bare literal token produced by the
// scanner: a quoted string, a number with an optional unit suffix, a hex
// color, true/false, or a bare identifier (treated as an unquoted String,
// possibly a named color resolved lazily by the caller).
func ParseLiteral(tok string) Value {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return Null()
	}
	if len(tok) >= 2 {
		if (tok[0] == '"' && tok[len(tok)-1] == '"') || (tok[0] == '\'' && tok[len(tok)-1] == '\'') {
			return QuotedString(tok[1 : len(tok)-1])
		}
	}
	if tok == "true" {
		return Boolean(true)
	}
	if tok == "false" {
		return Boolean(false)
	}
	if strings.HasPrefix(tok, "#") {
		if c, err := ParseColor(tok); err == nil {
			return ColorValue(c)
		}
	}
	if m := numericUnitRegex.FindStringSubmatch(tok); m != nil {
		n, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			unit := m[2]
			if unit == "%" {
				return NumberWithUnit(n, "%")
			}
			return NumberWithUnit(n, unit)
		}
	}
	return String(tok)
}
