// Package filefilter provides predicate filters over directory entries
// and boolean combinators to compose them. A filter is a plain function
// rather than an interface hierarchy, so composition is ordinary
// function composition.
package filefilter

import (
	"io/fs"
	"regexp"
	"strings"
	"time"

	"github.com/mcdonaldj/fskit/internal/pathname"
)

// Filter decides whether a directory entry is accepted. The path is the
// full path of the entry as seen by the traversal.
type Filter func(path string, d fs.DirEntry) bool

// True accepts everything.
func True() Filter {
	return func(string, fs.DirEntry) bool { return true }
}

// False rejects everything.
func False() Filter {
	return func(string, fs.DirEntry) bool { return false }
}

// And accepts entries accepted by every given filter.
func And(filters ...Filter) Filter {
	return func(path string, d fs.DirEntry) bool {
		for _, f := range filters {
			if !f(path, d) {
				return false
			}
		}
		return true
	}
}

// Or accepts entries accepted by at least one of the given filters.
func Or(filters ...Filter) Filter {
	return func(path string, d fs.DirEntry) bool {
		for _, f := range filters {
			if f(path, d) {
				return true
			}
		}
		return false
	}
}

// Not inverts a filter.
func Not(f Filter) Filter {
	return func(path string, d fs.DirEntry) bool { return !f(path, d) }
}

// Name accepts entries whose name exactly matches one of the given names.
func Name(names ...string) Filter {
	return func(path string, d fs.DirEntry) bool {
		for _, n := range names {
			if d.Name() == n {
				return true
			}
		}
		return false
	}
}

// Prefix accepts entries whose name starts with one of the given prefixes.
func Prefix(prefixes ...string) Filter {
	return func(path string, d fs.DirEntry) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(d.Name(), p) {
				return true
			}
		}
		return false
	}
}

// Suffix accepts entries whose name ends with one of the given suffixes.
func Suffix(suffixes ...string) Filter {
	return func(path string, d fs.DirEntry) bool {
		for _, s := range suffixes {
			if strings.HasSuffix(d.Name(), s) {
				return true
			}
		}
		return false
	}
}

// Wildcard accepts entries whose name matches one of the given wildcard
// patterns ('*' and '?').
func Wildcard(patterns ...string) Filter {
	return func(path string, d fs.DirEntry) bool {
		for _, p := range patterns {
			if pathname.WildcardMatch(d.Name(), p) {
				return true
			}
		}
		return false
	}
}

// Regex accepts entries whose name matches the expression.
func Regex(re *regexp.Regexp) Filter {
	return func(path string, d fs.DirEntry) bool {
		return re.MatchString(d.Name())
	}
}

// Dirs accepts directories only.
func Dirs() Filter {
	return func(path string, d fs.DirEntry) bool { return d.IsDir() }
}

// Files accepts non-directories only.
func Files() Filter {
	return func(path string, d fs.DirEntry) bool { return !d.IsDir() }
}

// Hidden accepts dotfiles.
func Hidden() Filter {
	return func(path string, d fs.DirEntry) bool {
		return strings.HasPrefix(d.Name(), ".")
	}
}

// SizeAtLeast accepts regular entries of at least n bytes. Entries
// whose metadata cannot be read are rejected.
func SizeAtLeast(n int64) Filter {
	return func(path string, d fs.DirEntry) bool {
		info, err := d.Info()
		if err != nil {
			return false
		}
		return info.Size() >= n
	}
}

// OlderThan accepts entries last modified before the cutoff. Entries
// whose metadata cannot be read are rejected.
func OlderThan(cutoff time.Time) Filter {
	return func(path string, d fs.DirEntry) bool {
		info, err := d.Info()
		if err != nil {
			return false
		}
		return info.ModTime().Before(cutoff)
	}
}
