package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestTakeRecordsTree(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.txt"), "a")
	write(t, filepath.Join(root, "sub", "b.txt"), "bb")

	s, err := Take(root)
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}

	var paths []string
	for _, e := range s.Entries {
		paths = append(paths, e.Path)
	}
	want := []string{"a.txt", "sub", "sub/b.txt"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	for _, e := range s.Entries {
		if e.Path == "sub/b.txt" && e.Size != 2 {
			t.Errorf("sub/b.txt size = %d, expected 2", e.Size)
		}
		if e.Path == "sub" && !e.Dir {
			t.Error("sub should be recorded as a directory")
		}
	}
}

func TestDiff(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "keep.txt"), "same")
	write(t, filepath.Join(root, "grow.txt"), "v1")
	write(t, filepath.Join(root, "gone.txt"), "bye")

	before, err := Take(root)
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}

	write(t, filepath.Join(root, "grow.txt"), "longer content")
	write(t, filepath.Join(root, "new.txt"), "hello")
	if err := os.Remove(filepath.Join(root, "gone.txt")); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	after, err := Take(root)
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}

	changes := Diff(before, after)
	want := Changes{
		Created: []string{"new.txt"},
		Changed: []string{"grow.txt"},
		Deleted: []string{"gone.txt"},
	}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
	if changes.Empty() {
		t.Error("Empty() should be false for a non-empty diff")
	}
}

func TestDiffMtimeOnlyChange(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "f.txt")
	write(t, path, "fixed")

	before, err := Take(root)
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}

	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	after, err := Take(root)
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}

	changes := Diff(before, after)
	if len(changes.Changed) != 1 || changes.Changed[0] != "f.txt" {
		t.Errorf("expected f.txt changed, got %+v", changes)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "x.txt"), "x")

	s, err := Take(root)
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "state", "snap.json")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(s, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	if Diff(s, loaded).Empty() != true {
		t.Error("identical snapshots should diff empty")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error loading missing snapshot")
	}
}
