package state

import "strings"

// Rules identifies fields to exclude from canonicalization.
//
// Excluded fields are omitted before sorting and before hashing, so they
// never influence the fingerprint and never appear in the persisted
// baseline text. Three mechanisms compose, any of which marks a field:
//
//   - Names: field names excluded wherever they appear in the tree. This is
//     the generalization of a declarative per-field marker attached to a
//     reusable field definition.
//   - Paths: dotted paths from the root (e.g. "session.token"). Sequence
//     elements do not contribute a path segment, so a path addresses the
//     field in every element of an intervening sequence.
//   - Predicate: an optional callback consulted with (path, name) for
//     policies that cannot be expressed as a static set.
type Rules struct {
	Names     []string
	Paths     []string
	Predicate func(path, name string) bool
}

// Excluded reports whether the field at the given path should be omitted.
func (r Rules) Excluded(path, name string) bool {
	for _, n := range r.Names {
		if n == name {
			return true
		}
	}
	for _, p := range r.Paths {
		if p == path {
			return true
		}
	}
	if r.Predicate != nil {
		return r.Predicate(path, name)
	}
	return false
}

// Empty reports whether the rules exclude nothing.
func (r Rules) Empty() bool {
	return len(r.Names) == 0 && len(r.Paths) == 0 && r.Predicate == nil
}

// joinPath appends a field name to a dotted path.
func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	var b strings.Builder
	b.Grow(len(parent) + 1 + len(name))
	b.WriteString(parent)
	b.WriteByte('.')
	b.WriteString(name)
	return b.String()
}
