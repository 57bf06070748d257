package watch

import "strings"

// Filter selects file names by wildcard patterns. An empty Filter matches
// every name.
//
// Supported patterns:
//   - "prefix*" matches names starting with "prefix"
//   - "*suffix" matches names ending with "suffix"
//   - "*contains*" matches names containing "contains"
//   - "prefix*suffix" matches names starting and ending accordingly
//   - "exact" matches names exactly
type Filter []string

// Match reports whether name matches any of the patterns.
func (f Filter) Match(name string) bool {
	if len(f) == 0 {
		return true
	}
	for _, pattern := range f {
		if matchesPattern(name, pattern) {
			return true
		}
	}
	return false
}

// matchesPattern checks if a name matches a wildcard pattern.
func matchesPattern(name, pattern string) bool {
	// No wildcard - exact match
	if !strings.Contains(pattern, "*") {
		return name == pattern
	}

	parts := strings.Split(pattern, "*")

	// leading segment anchors the start, trailing segment anchors the end
	first, last := parts[0], parts[len(parts)-1]
	if !strings.HasPrefix(name, first) {
		return false
	}
	rest := name[len(first):]
	if len(rest) < len(last) || !strings.HasSuffix(rest, last) {
		return false
	}
	rest = rest[:len(rest)-len(last)]

	// middle segments must appear in order
	for _, mid := range parts[1 : len(parts)-1] {
		i := strings.Index(rest, mid)
		if i < 0 {
			return false
		}
		rest = rest[i+len(mid):]
	}
	return true
}
