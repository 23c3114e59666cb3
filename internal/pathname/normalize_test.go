package pathname

import (
	"testing"
)

func TestNormalizeUnix(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", "", true},
		{".", "", true},
		{"..", "", false},
		{"a/b/../c", "a/c", true},
		{"a/b/../../c", "c", true},
		{"a/../../c", "", false},
		{"a/b/..", "a", true},
		{"foo/../bar", "bar", true},
		{"foo/../../bar", "", false},
		{"/foo//", "/foo/", true},
		{"/foo/./", "/foo/", true},
		{"/foo/../bar", "/bar", true},
		{"/foo/../bar/", "/bar/", true},
		{"/foo/../bar/../baz", "/baz", true},
		{"/../", "", false},
		{"/..", "", false},
		{"../foo", "", false},
		{"/", "/", true},
		{"a/", "a/", true},
		{"./a", "a", true},
		{"//server/foo/../bar", "//server/bar", true},
		{"//server/../bar", "", false},
		{"C:\\foo\\..\\bar", "C:/bar", true},
		{"C:\\..\\bar", "", false},
		{"C:", "C:", true},
		{"C:/", "C:/", true},
		{"~", "~/", true},
		{"~user", "~user/", true},
		{"~/foo/../bar/", "~/bar/", true},
		{"~/../bar", "", false},
		{"///a", "", false},
		{"\\\\\\a", "", false},
		{"mixed\\seps/are\\fine", "mixed/seps/are/fine", true},
	}

	for _, tt := range tests {
		got, ok := NormalizeTo(tt.in, true)
		if ok != tt.ok {
			t.Errorf("NormalizeTo(%q) ok = %v, expected %v", tt.in, ok, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeTo(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeWindowsSeparators(t *testing.T) {
	got, ok := NormalizeTo("a/b/../c", false)
	if !ok || got != "a\\c" {
		t.Errorf("NormalizeTo(a/b/../c, false) = %q, %v", got, ok)
	}

	got, ok = NormalizeTo("C:/foo/bar", false)
	if !ok || got != "C:\\foo\\bar" {
		t.Errorf("NormalizeTo(C:/foo/bar, false) = %q, %v", got, ok)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"a/b/../c", "/foo//bar/./baz", "C:\\x\\y\\..\\z", "~/a/b",
		"//server/share/file", "plain", "a/", "/",
	}
	for _, in := range inputs {
		once, ok := NormalizeTo(in, true)
		if !ok {
			t.Fatalf("NormalizeTo(%q) unexpectedly invalid", in)
		}
		twice, ok := NormalizeTo(once, true)
		if !ok {
			t.Fatalf("NormalizeTo(%q) unexpectedly invalid on second pass", once)
		}
		if once != twice {
			t.Errorf("normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeNoEndSeparator(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"/foo/bar/", "/foo/bar", true},
		{"/foo/../bar/", "/bar", true},
		{"a/", "a", true},
		{"/", "/", true},
		{"C:\\", "C:/", true},
		{"~", "~/", true},
		{"..", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeNoEndSeparatorTo(tt.in, true)
		if ok != tt.ok || got != tt.want {
			t.Errorf("NormalizeNoEndSeparatorTo(%q) = %q, %v, expected %q, %v",
				tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizePanicsOnNul(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for NUL byte in path")
		}
	}()
	NormalizeTo("a/b\x00c", true)
}

func TestPrefixLength(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a/b", 0},
		{"/a/b", 1},
		{"/", 1},
		{"~", 2},
		{"~/a", 2},
		{"~user/a", 6},
		{"~user", 6},
		{"C:", 2},
		{"C:a", 2},
		{"C:\\a", 3},
		{"C:/a", 3},
		{"//server/a", 9},
		{"\\\\server\\a", 9},
		{"//10.0.0.1/share", 11},
		{"//::1/share", 6},
		{":bad", -1},
		{"1:bad", -1},
		{"///a", -1},
		{"//a", -1},
		{"//-bad/a", -1},
	}
	for _, tt := range tests {
		if got := PrefixLength(tt.in); got != tt.want {
			t.Errorf("PrefixLength(%q) = %d, expected %d", tt.in, got, tt.want)
		}
	}
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"C:\\a\\b", "C:\\", true},
		{"~user/docs", "~user/", true},
		{"~", "~/", true},
		{"relative/path", "", true},
		{":invalid", "", false},
	}
	for _, tt := range tests {
		got, ok := Prefix(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Prefix(%q) = %q, %v, expected %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
