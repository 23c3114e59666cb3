package pathname

import (
	"strings"
)

// SeparatorsToUnix converts all separators in the path to forward slashes.
func SeparatorsToUnix(path string) string {
	return strings.ReplaceAll(path, string(WindowsSeparator), string(UnixSeparator))
}

// SeparatorsToWindows converts all separators in the path to backslashes.
func SeparatorsToWindows(path string) string {
	return strings.ReplaceAll(path, string(UnixSeparator), string(WindowsSeparator))
}

// SeparatorsToSystem converts all separators to the host convention.
func SeparatorsToSystem(path string) string {
	if SystemSeparator == WindowsSeparator {
		return SeparatorsToWindows(path)
	}
	return SeparatorsToUnix(path)
}

// IndexOfLastSeparator returns the index of the last separator of
// either convention, or -1 if there is none.
func IndexOfLastSeparator(path string) int {
	lastUnix := strings.LastIndexByte(path, UnixSeparator)
	lastWin := strings.LastIndexByte(path, WindowsSeparator)
	return max(lastUnix, lastWin)
}

// IndexOfExtension returns the index of the dot introducing the
// extension, or -1 when the last dot belongs to a directory segment or
// there is no dot at all.
func IndexOfExtension(path string) int {
	dot := strings.LastIndexByte(path, '.')
	if dot < IndexOfLastSeparator(path) {
		return notFound
	}
	return dot
}

// Name returns the last segment of the path, including its extension.
func Name(path string) string {
	requireNoNul(path)
	return path[IndexOfLastSeparator(path)+1:]
}

// BaseName returns the last segment of the path without its extension.
func BaseName(path string) string {
	return removeExtension(Name(path))
}

// Extension returns the extension of the path without the dot, or ""
// when the path has none.
func Extension(path string) string {
	i := IndexOfExtension(path)
	if i == notFound {
		return ""
	}
	return path[i+1:]
}

func removeExtension(path string) string {
	i := IndexOfExtension(path)
	if i == notFound {
		return path
	}
	return path[:i]
}

// IsExtension reports whether the path's extension is one of the given
// extensions. An empty list matches a path with no extension.
func IsExtension(path string, extensions ...string) bool {
	ext := Extension(path)
	if len(extensions) == 0 {
		return ext == ""
	}
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Concat joins a base path and an addition, normalizing the result
// with the system separator. An addition carrying its own prefix
// replaces the base entirely. Returns false when the combined path
// cannot be normalized.
func Concat(basePath, fullPathToAdd string) (string, bool) {
	prefix := PrefixLength(fullPathToAdd)
	if prefix < 0 {
		return "", false
	}
	if prefix > 0 {
		return Normalize(fullPathToAdd)
	}
	if basePath == "" {
		return Normalize(fullPathToAdd)
	}
	ch := basePath[len(basePath)-1]
	if isSeparator(ch) {
		return Normalize(basePath + fullPathToAdd)
	}
	return Normalize(basePath + string(SystemSeparator) + fullPathToAdd)
}

// EqualsNormalized reports whether two paths are equal after
// normalization with the system separator. Paths that fail to
// normalize are never equal to anything.
func EqualsNormalized(path1, path2 string) bool {
	n1, ok1 := Normalize(path1)
	n2, ok2 := Normalize(path2)
	return ok1 && ok2 && n1 == n2
}

// DirectoryContains reports whether the child path lives under the
// parent path. Both arguments are expected to be already normalized;
// no filesystem access is performed. A path does not contain itself.
func DirectoryContains(canonicalParent, canonicalChild string) bool {
	if canonicalChild == canonicalParent {
		return false
	}
	if canonicalParent == "" || canonicalChild == "" {
		return false
	}
	parent := canonicalParent
	if !isSeparator(parent[len(parent)-1]) {
		parent += string(SystemSeparator)
	}
	return strings.HasPrefix(canonicalChild, parent)
}
