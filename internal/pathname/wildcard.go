package pathname

import "strings"

// WildcardMatch reports whether the name matches the wildcard pattern.
// '?' matches a single character and '*' matches any run of characters,
// including none. Matching is case-sensitive and operates on the whole
// name, not a substring.
func WildcardMatch(name, pattern string) bool {
	return wildcardMatch([]rune(name), []rune(pattern))
}

// WildcardMatchFold is WildcardMatch with case-insensitive comparison.
func WildcardMatchFold(name, pattern string) bool {
	return wildcardMatch([]rune(strings.ToLower(name)), []rune(strings.ToLower(pattern)))
}

// Greedy '*' with single-level backtracking: remember the position of
// the last star and the name index it consumed up to, and on mismatch
// retry with the star eating one more character.
func wildcardMatch(name, pattern []rune) bool {
	n, p := 0, 0
	star, mark := -1, 0
	for n < len(name) {
		switch {
		case p < len(pattern) && (pattern[p] == '?' || pattern[p] == name[n]):
			n++
			p++
		case p < len(pattern) && pattern[p] == '*':
			star = p
			mark = n
			p++
		case star >= 0:
			p = star + 1
			mark++
			n = mark
		default:
			return false
		}
	}
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}
