// Package strings re-exports the subset of the standard library's strings
// package that scssgo's HTTP plumbing (handler.go, middleware.go) actually
// calls, adapted from the teacher's internal/strings package (which aliased
// the full stdlib surface plus a zero-alloc TrimSpace/split pair for LESS
// property parsing -- neither of which this compiler's SCSS path uses).
package strings

import (
	stdstrings "strings"
)

// HasPrefix tests whether the string s begins with prefix.
var HasPrefix = stdstrings.HasPrefix

// HasSuffix tests whether the string s ends with suffix.
var HasSuffix = stdstrings.HasSuffix

// TrimPrefix returns s without the provided leading prefix string. If s
// doesn't start with prefix, s is returned unchanged.
var TrimPrefix = stdstrings.TrimPrefix
