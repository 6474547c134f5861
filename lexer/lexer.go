package lexer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/titpetric/scssgo/value"
)

const separator = "\x00"

// Index maps a growable index number embedded in the preprocessed source
// back to "file:lineno", per spec.md §4.B / §9's "fileid 0 -> <unknown>:0"
// table. Index 0 is always the "<unknown>:0" sentinel entry.
type Index struct {
	entries []string
}

// NewIndex creates an Index pre-seeded with the sentinel entry 0.
func NewIndex() *Index {
	return &Index{entries: []string{"<unknown>:0"}}
}

// Add appends a new "file:lineno" entry and returns its index.
func (idx *Index) Add(file string, lineno int) int {
	idx.entries = append(idx.entries, fmt.Sprintf("%s:%d", file, lineno))
	return len(idx.entries) - 1
}

// Lookup returns the "file:lineno" string for an index, or the sentinel if
// out of range.
func (idx *Index) Lookup(n int) string {
	if n < 0 || n >= len(idx.entries) {
		return idx.entries[0]
	}
	return idx.entries[n]
}

var (
	mlCommentRe    = regexp.MustCompile(`(?s)/\*.*?\*/`)
	slCommentRe    = regexp.MustCompile(`(^|[^:])//[^\n]*`)
	zeroRe         = regexp.MustCompile(`\b0\.(\d)`)
	lineIndexToken = regexp.MustCompile("\n.+" + separator)
)

// Preprocess runs the lexical preprocessor over raw SCSS text: strips
// comments, shields string contents, rewrites bare color names to hex, and
// instruments every source line with an index token so the block locator
// can recover file:line without counting newlines itself. Returns the
// instrumented text; the index tokens in it resolve against idx, to which
// one entry per source line is added.
func Preprocess(src, file string, idx *Index) string {
	src = stripComments(src)

	var out strings.Builder
	lineno := 0
	for _, line := range strings.Split(src, "\n") {
		lineno++
		shielded := shieldStrings(line)
		shielded = hexizeColorNames(shielded)
		n := idx.Add(file, lineno)
		if strings.TrimSpace(shielded) == "" {
			// Collapse empty instrumented lines, per spec.md §4.B.
			continue
		}
		out.WriteString(fmt.Sprintf("%d%s", n, separator))
		out.WriteString(shielded)
		out.WriteString("\n")
	}
	return collapseBraces(out.String())
}

// stripComments removes /* ... */ and // ... comments, taking care not to
// treat "://" (a URL scheme) as a line comment, per spec.md §4.B.
func stripComments(src string) string {
	src = mlCommentRe.ReplaceAllString(src, "")
	return slCommentRe.ReplaceAllStringFunc(src, func(m string) string {
		idx := strings.Index(m, "//")
		if idx < 0 {
			return m
		}
		return m[:idx]
	})
}

// shieldStrings hides the unsafe characters inside "..."/'...' literals so
// the block locator's brace/paren scan does not misparse them, reversed
// again at stringification time by UnshieldString.
func shieldStrings(line string) string {
	var out strings.Builder
	inString := false
	var quote byte
	start := 0
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case !inString && (c == '"' || c == '\''):
			inString = true
			quote = c
			start = i + 1
			out.WriteByte(c)
		case inString && c == quote && (i == 0 || line[i-1] != '\\'):
			out.WriteString(ShieldString(line[start:i]))
			out.WriteByte(c)
			inString = false
		case inString:
			// deferred to the shield call on string end
		default:
			out.WriteByte(c)
		}
	}
	if inString {
		out.WriteString(ShieldString(line[start:]))
	}
	return out.String()
}

// hexizeColorNames rewrites bare CSS color-keyword tokens to their hex
// equivalent so that expression arithmetic on colors works uniformly,
// matching spec.md §4.B. It avoids rewriting tokens that are themselves
// preceded by "-", ".", "#" or "$" (part of an identifier or variable).
var colorNameToken = regexp.MustCompile(`(?i)(?:^|[^-\w.#$])([a-zA-Z]+)(?:$|[^-\w])`)

func hexizeColorNames(line string) string {
	return colorNameToken.ReplaceAllStringFunc(line, func(m string) string {
		sub := colorNameToken.FindStringSubmatch(m)
		if sub == nil {
			return m
		}
		name := strings.ToLower(sub[1])
		hex, ok := value.NamedColors[name]
		if !ok || name == "transparent" {
			return m
		}
		return strings.Replace(m, sub[1], hex, 1)
	})
}

// collapseBraces rewrites "<token>  {" (any run of whitespace, or none) to
// "<token> {" with exactly one space, per spec.md §4.B, and collapses
// ":   {" and "#   {" to ":{" and "#{" so nested property blocks and
// interpolations keep the brace attached.
var (
	expandRulesSpaceRe      = regexp.MustCompile(`([^:#\s])\s*{`)
	collapsePropertySpaceRe = regexp.MustCompile(`([:#])\s*{`)
)

func collapseBraces(src string) string {
	src = collapsePropertySpaceRe.ReplaceAllString(src, "$1{")
	return expandRulesSpaceRe.ReplaceAllString(src, "${1} {")
}
