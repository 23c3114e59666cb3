package tui

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestComputeFileDiff(t *testing.T) {
	a := writeTempFile(t, "a.txt", "one\ntwo\nthree\n")
	b := writeTempFile(t, "b.txt", "one\nTWO\nthree\n")

	result, err := ComputeFileDiff(a, b)
	if err != nil {
		t.Fatalf("ComputeFileDiff: %v", err)
	}
	if result.Error != "" {
		t.Fatalf("unexpected result error: %s", result.Error)
	}
	if result.IsBinary {
		t.Fatal("unexpected binary flag")
	}
	if result.Equal() {
		t.Fatal("expected differences")
	}

	var deleted, added []string
	for _, l := range result.Lines {
		switch l.Type {
		case '-':
			deleted = append(deleted, l.Content)
		case '+':
			added = append(added, l.Content)
		}
	}
	if len(deleted) != 1 || deleted[0] != "two" {
		t.Errorf("deleted = %v, want [two]", deleted)
	}
	if len(added) != 1 || added[0] != "TWO" {
		t.Errorf("added = %v, want [TWO]", added)
	}
}

func TestComputeFileDiffLineNumbers(t *testing.T) {
	a := writeTempFile(t, "a.txt", "same\nold\n")
	b := writeTempFile(t, "b.txt", "same\nnew\n")

	result, err := ComputeFileDiff(a, b)
	if err != nil {
		t.Fatalf("ComputeFileDiff: %v", err)
	}

	for _, l := range result.Lines {
		switch {
		case l.Type == ' ' && l.Content == "same":
			if l.LineNum1 != 1 || l.LineNum2 != 1 {
				t.Errorf("unchanged line numbers = %d/%d, want 1/1", l.LineNum1, l.LineNum2)
			}
		case l.Type == '-':
			if l.LineNum1 != 2 || l.LineNum2 != 0 {
				t.Errorf("deleted line numbers = %d/%d, want 2/0", l.LineNum1, l.LineNum2)
			}
		case l.Type == '+':
			if l.LineNum1 != 0 || l.LineNum2 != 2 {
				t.Errorf("added line numbers = %d/%d, want 0/2", l.LineNum1, l.LineNum2)
			}
		}
	}
}

func TestComputeFileDiffIdentical(t *testing.T) {
	a := writeTempFile(t, "a.txt", "same\ncontent\n")
	b := writeTempFile(t, "b.txt", "same\ncontent\n")

	result, err := ComputeFileDiff(a, b)
	if err != nil {
		t.Fatalf("ComputeFileDiff: %v", err)
	}
	if !result.Equal() {
		t.Error("expected no differences")
	}
}

func TestComputeFileDiffBinary(t *testing.T) {
	a := writeTempFile(t, "a.bin", "abc\x00def")
	b := writeTempFile(t, "b.txt", "plain text")

	result, err := ComputeFileDiff(a, b)
	if err != nil {
		t.Fatalf("ComputeFileDiff: %v", err)
	}
	if !result.IsBinary {
		t.Error("expected binary detection")
	}
	if len(result.Lines) != 0 {
		t.Errorf("expected no lines for binary diff, got %d", len(result.Lines))
	}
}

func TestComputeFileDiffMissingFile(t *testing.T) {
	a := writeTempFile(t, "a.txt", "content")

	result, err := ComputeFileDiff(a, filepath.Join(t.TempDir(), "nope.txt"))
	if err != nil {
		t.Fatalf("ComputeFileDiff: %v", err)
	}
	if result.Error == "" {
		t.Error("expected read error in result")
	}
}

func TestIsBinaryContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"empty", "", false},
		{"plain text", "hello world\n", false},
		{"null byte", "abc\x00def", true},
		{"invalid utf8", "abc\xff\xfe", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBinaryContent(tt.content); got != tt.want {
				t.Errorf("IsBinaryContent = %v, want %v", got, tt.want)
			}
		})
	}
}
