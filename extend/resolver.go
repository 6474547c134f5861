// Package extend implements the @extend graph resolver (spec.md §4.G's
// "@extend" directive, detailed in §4.I): selectors extended by other
// selectors inherit their properties via generated compound selectors,
// resolved by iterating the extend graph to a fixed point.
//
// Grounded on original_source/scss/scss.py's parse_extends/apply_extends
// (iterative fixed-point pass over an extends-map, capped to avoid
// pathological cycles) and the teacher's renderer/resolver.go for the
// general "resolve against an accumulated table" shape.
package extend

import "strings"

// maxPasses bounds the fixed-point iteration (original_source settles in
// practice well under this; it exists only to stop a malformed extend
// cycle from looping forever).
const maxPasses = 10

// edge is one "child extends parent" request, e.g. `.error { @extend .box; }`
// records child=".error" parent=".box".
type edge struct {
	child  string
	parent string
}

// Graph accumulates selector->position registrations and @extend edges
// during compilation, then resolves which selectors must be unioned onto
// which rule positions.
type Graph struct {
	positions map[string][]int // selector -> output positions that declared it
	edges     []edge
}

// NewGraph returns an empty extend Graph.
func NewGraph() *Graph {
	return &Graph{positions: map[string][]int{}}
}

// Register records that a compiled Rule at the given output position
// declared selector sel (spec.md §4.G: called once per compiled rule).
func (g *Graph) Register(sel string, position int) {
	for _, part := range splitSelectors(sel) {
		g.positions[part] = append(g.positions[part], position)
	}
}

// PositionsOf returns the output positions of rules already registered
// under the exact selector sel, for Rule.Deps bookkeeping (spec.md §4.H:
// "Record DEPS edges from every child-rule position to every parent-rule
// position so manage_order keeps extended rules after the thing they
// extend").
func (g *Graph) PositionsOf(sel string) []int {
	return g.positions[strings.TrimSpace(sel)]
}

// AddExtend records `from { @extend to; }`.
func (g *Graph) AddExtend(from, to string) {
	to = strings.TrimSuffix(strings.TrimSpace(to), "!optional")
	to = strings.TrimSpace(to)
	for _, f := range splitSelectors(from) {
		g.edges = append(g.edges, edge{child: f, parent: to})
	}
}

// Resolve returns, for every selector that is the target of at least one
// @extend edge, the set of extending selectors that should be unioned onto it,
// iterated to a fixed point (spec.md §4.I: extends of extends apply
// transitively) and bounded by maxPasses.
func (g *Graph) Resolve() map[string][]string {
	result := map[string]map[string]bool{}
	addResult := func(parent, child string) bool {
		if result[parent] == nil {
			result[parent] = map[string]bool{}
		}
		if result[parent][child] {
			return false
		}
		result[parent][child] = true
		return true
	}

	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		for _, e := range g.edges {
			if addResult(e.parent, e.child) {
				changed = true
			}
			// Transitive: anything that already extends e.child also
			// extends e.parent's target.
			for existingChild := range result[e.child] {
				if addResult(e.parent, existingChild) {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	out := make(map[string][]string, len(result))
	for parent, children := range result {
		for child := range children {
			out[parent] = append(out[parent], child)
		}
	}
	return out
}

// splitSelectors splits a comma-separated compound selector into its
// trimmed parts.
func splitSelectors(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
