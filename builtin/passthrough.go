package builtin

import "regexp"

// passthroughRe reproduces original_source/regexes.py's _css_functions_re:
// the set of CSS function names an unknown expression-level call is
// reproduced literally for, per spec.md §6.
var passthroughRe = regexp.MustCompile(`^(` +
	`attr|counter|counters|url|rgb|rect|` + // CSS2
	`calc|min|max|cycle|` + // CSS3 values
	`rgba|hsl|hsla|` + // CSS3 color
	`local|format|` + // CSS3 fonts
	`image|element|` +
	`(repeating-)?(linear|radial)-gradient|` + // CSS3 images
	`matrix|translate|translateX|translateY|scale|scaleX|scaleY|rotate|skewX|skewY|` + // 2D transforms
	`matrix3d|translate3d|translateZ|scale3d|scaleZ|rotate3d|rotateX|rotateY|rotateZ|perspective|` + // 3D transforms
	`cubic-bezier|` + // transitions
	`-[^-]+-.+` + // any vendor-prefixed function
	`)$`)

// IsPassthrough reports whether name is a recognized CSS function that an
// unresolved expression-level call should be reproduced literally for.
func IsPassthrough(name string) bool {
	return passthroughRe.MatchString(name)
}
