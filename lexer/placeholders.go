// Package lexer implements the lexical preprocessor: it strips comments,
// instruments each line with a growable file:line index token, and shields
// string contents from the block locator's brace/paren scan by substituting
// unsafe characters with variable-reference placeholders, reversed again at
// stringification time.
//
// Grounded on original_source/scss.py's _default_scss_vars placeholder
// table and the teacher's parser/lexer.go comment/string scanning.
package lexer

// placeholders is the fixed mapping reproduced from
// original_source/scss.py's _default_scss_vars: unsafe characters that
// would otherwise confuse the block locator's brace/paren/quote scan are
// hidden behind "$__name" placeholders while a string is shielded, and
// reversed again when the CSS emitter prints the final value.
var placeholders = []struct {
	placeholder string
	literal     string
}{
	{"$__doubleslash", "//"},
	{"$__bigcopen", "/*"},
	{"$__bigcclose", "*/"},
	{"$__doubledot", ":"},
	{"$__semicolon", ";"},
	{"$__curlybracketopen", "{"},
	{"$__curlybracketclosed", "}"},
}

// ShieldString replaces unsafe characters inside a string literal's content
// with their placeholder form.
func ShieldString(s string) string {
	out := []byte(s)
	return replaceAllPairs(out, false)
}

// UnshieldString reverses ShieldString, used by the emitter on every
// property value right before it is printed.
func UnshieldString(s string) string {
	out := []byte(s)
	return replaceAllPairs(out, true)
}

func replaceAllPairs(b []byte, reverse bool) string {
	s := string(b)
	for _, p := range placeholders {
		from, to := p.literal, p.placeholder
		if reverse {
			from, to = p.placeholder, p.literal
		}
		s = replaceAll(s, from, to)
	}
	return s
}

func replaceAll(s, old, new string) string {
	if old == "" {
		return s
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		if i+len(old) <= len(s) && s[i:i+len(old)] == old {
			out = append(out, new...)
			i += len(old)
			continue
		}
		out = append(out, s[i])
		i++
	}
	return string(out)
}
