// Package pathname provides lexical path manipulation: normalization,
// prefix handling, separator conversion, and wildcard matching. All
// functions are pure string transformations and never touch the
// filesystem, so they are safe for display, comparison, and containment
// checks without I/O cost or race conditions.
package pathname

import (
	"net"
	"os"
	"regexp"
	"strings"
)

const (
	// UnixSeparator is the separator used on unix-like systems.
	UnixSeparator = '/'
	// WindowsSeparator is the separator used on Windows.
	WindowsSeparator = '\\'
)

// SystemSeparator is the separator of the host operating system.
var SystemSeparator = byte(os.PathSeparator)

const notFound = -1

// Normalize collapses a path to its simplest lexical form using the
// system separator: `.` segments are dropped, `..` segments consume the
// preceding segment, and doubled separators are merged. The prefix
// (drive letter, UNC authority, `~`, or root) is identified first and
// never touched by segment collapsing. A trailing separator is kept if
// the input had one.
//
// The second return value is false when the path cannot be normalized:
// a malformed prefix (such as a bad UNC authority) or a `..` that would
// escape above the root. Paths containing a NUL byte cause a panic.
func Normalize(path string) (string, bool) {
	return doNormalize(path, SystemSeparator, true)
}

// NormalizeTo is Normalize with an explicit separator convention:
// true for unix separators, false for windows separators.
func NormalizeTo(path string, unixSeparators bool) (string, bool) {
	return doNormalize(path, separatorFor(unixSeparators), true)
}

// NormalizeNoEndSeparator is Normalize except the result never carries
// a trailing separator, unless the result is the root itself.
func NormalizeNoEndSeparator(path string) (string, bool) {
	return doNormalize(path, SystemSeparator, false)
}

// NormalizeNoEndSeparatorTo is NormalizeNoEndSeparator with an explicit
// separator convention.
func NormalizeNoEndSeparatorTo(path string, unixSeparators bool) (string, bool) {
	return doNormalize(path, separatorFor(unixSeparators), false)
}

func separatorFor(unixSeparators bool) byte {
	if unixSeparators {
		return UnixSeparator
	}
	return WindowsSeparator
}

func flipSeparator(sep byte) byte {
	if sep == UnixSeparator {
		return WindowsSeparator
	}
	return UnixSeparator
}

func isSeparator(ch byte) bool {
	return ch == UnixSeparator || ch == WindowsSeparator
}

// requireNoNul panics on embedded NUL bytes. A NUL in a path is an
// injection attempt, not malformed syntax, so it fails loud instead of
// returning the quiet "no value" used for syntactic nonsense.
func requireNoNul(path string) {
	if strings.IndexByte(path, 0) >= 0 {
		panic("pathname: NUL byte in path")
	}
}

// doNormalize works on the raw bytes of the path. Only ASCII bytes are
// compared, and UTF-8 continuation bytes never collide with ASCII, so
// multibyte runes pass through untouched.
func doNormalize(path string, sep byte, keepSeparator bool) (string, bool) {
	requireNoNul(path)

	size := len(path)
	if size == 0 {
		return path, true
	}
	prefix := PrefixLength(path)
	if prefix < 0 {
		return "", false
	}

	arr := make([]byte, size+2)
	copy(arr, path)

	other := flipSeparator(sep)
	for i := range arr {
		if arr[i] == other {
			arr[i] = sep
		}
	}

	// Add a trailing separator to simplify the loops below.
	lastIsDirectory := true
	if arr[size-1] != sep {
		arr[size] = sep
		size++
		lastIsDirectory = false
	}

	// Adjoining separators.
	start := prefix
	if start == 0 {
		start = 1
	}
	for i := start; i < size; i++ {
		if arr[i] == sep && arr[i-1] == sep {
			copy(arr[i-1:], arr[i:size])
			size--
			i--
		}
	}

	// "./" segments.
	for i := prefix + 1; i < size; i++ {
		if arr[i] == sep && arr[i-1] == '.' && (i == prefix+1 || arr[i-2] == sep) {
			copy(arr[i-1:], arr[i+1:size])
			size -= 2
			i--
		}
	}

	// "../" segments.
outer:
	for i := prefix + 2; i < size; i++ {
		if arr[i] == sep && arr[i-1] == '.' && arr[i-2] == '.' && (i == prefix+2 || arr[i-3] == sep) {
			if i == prefix+2 {
				// Nothing left to consume; the path escapes its root.
				return "", false
			}
			for j := i - 4; j >= prefix; j-- {
				if arr[j] == sep {
					// Remove "b/../" from "a/b/../c".
					copy(arr[j+1:], arr[i+1:size])
					size -= i - j
					i = j + 1
					continue outer
				}
			}
			// Remove "a/../" from "a/../c".
			copy(arr[prefix:], arr[i+1:size])
			size -= i + 1 - prefix
			i = prefix + 1
		}
	}

	if size <= 0 {
		return "", true
	}
	if size <= prefix {
		return string(arr[:size]), true
	}
	if lastIsDirectory && keepSeparator {
		return string(arr[:size]), true
	}
	return string(arr[:size-1]), true
}

// PrefixLength returns the length of the path's prefix: 0 for a
// relative path, 1 for "/", 2 for "C:" (drive relative), 3 for "C:\",
// the authority length plus separators for a UNC path, and the
// home-reference length for "~" and "~user". The returned length may
// exceed the input length: a bare "~" implies "~/". A malformed prefix
// returns -1.
func PrefixLength(path string) int {
	size := len(path)
	if size == 0 {
		return 0
	}
	ch0 := path[0]
	if ch0 == ':' {
		return notFound
	}
	if size == 1 {
		if ch0 == '~' {
			return 2 // implied trailing separator
		}
		if isSeparator(ch0) {
			return 1
		}
		return 0
	}
	if ch0 == '~' {
		posUnix := strings.IndexByte(path[1:], UnixSeparator)
		posWin := strings.IndexByte(path[1:], WindowsSeparator)
		if posUnix == notFound && posWin == notFound {
			return size + 1 // implied trailing separator
		}
		if posUnix == notFound {
			posUnix = posWin
		}
		if posWin == notFound {
			posWin = posUnix
		}
		return min(posUnix, posWin) + 2
	}
	ch1 := path[1]
	if ch1 == ':' {
		ch0 = upperASCII(ch0)
		if ch0 >= 'A' && ch0 <= 'Z' {
			if size == 2 || !isSeparator(path[2]) {
				return 2
			}
			return 3
		}
		if ch0 == UnixSeparator {
			return 1
		}
		return notFound
	}
	if isSeparator(ch0) && isSeparator(ch1) {
		posUnix := strings.IndexByte(path[2:], UnixSeparator)
		posWin := strings.IndexByte(path[2:], WindowsSeparator)
		if posUnix == notFound && posWin == notFound || posUnix == 0 || posWin == 0 {
			return notFound
		}
		if posUnix == notFound {
			posUnix = posWin
		}
		if posWin == notFound {
			posWin = posUnix
		}
		pos := min(posUnix, posWin) + 3
		if !isValidHostName(path[2 : pos-1]) {
			return notFound
		}
		return pos
	}
	if isSeparator(ch0) {
		return 1
	}
	return 0
}

// Prefix returns the prefix portion of the path, such as "C:\" or
// "~user/". A bare home reference gains its implied trailing separator.
// The second return value is false for a malformed prefix.
func Prefix(path string) (string, bool) {
	n := PrefixLength(path)
	if n < 0 {
		return "", false
	}
	if n > len(path) {
		return path + string(UnixSeparator), true
	}
	return path[:n], true
}

func upperASCII(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch - 'a' + 'A'
	}
	return ch
}

// Hostname labels: alphanumeric with interior hyphens, optionally a
// trailing dot, total length capped per RFC 1035.
var hostNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*(\.[a-zA-Z0-9][a-zA-Z0-9-]*)*\.?$`)

// isValidHostName reports whether a UNC authority looks like a host:
// an IPv4/IPv6 literal or an RFC 3986 registered name.
func isValidHostName(name string) bool {
	if name == "" {
		return false
	}
	if net.ParseIP(name) != nil {
		return true
	}
	return len(name) <= 255 && hostNamePattern.MatchString(name)
}
