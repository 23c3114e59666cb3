package walker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mcdonaldj/fskit/internal/filefilter"
	"github.com/mcdonaldj/fskit/internal/mocks"
)

// recorder accumulates traversal events as "kind path depth" strings.
type recorder struct {
	events []string
	veto   map[string]bool
	cancel map[string]bool
}

func newRecorder() *recorder {
	return &recorder{veto: map[string]bool{}, cancel: map[string]bool{}}
}

func (r *recorder) record(kind, path string, depth int) {
	r.events = append(r.events, fmt.Sprintf("%s %s %d", kind, filepath.Base(path), depth))
}

func (r *recorder) EnterDir(path string, depth int) (bool, error) {
	r.record("enter", path, depth)
	return !r.veto[filepath.Base(path)], nil
}

func (r *recorder) VisitFile(path string, depth int) error {
	r.record("file", path, depth)
	return nil
}

func (r *recorder) ExitDir(path string, depth int) error {
	r.record("exit", path, depth)
	return nil
}

func (r *recorder) ShouldCancel(path string, depth int) bool {
	return r.cancel[filepath.Base(path)]
}

// makeTree builds root/sub/file.txt plus root/top.txt in a temp dir.
func makeTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "root")
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0755); err != nil {
		t.Fatalf("Failed to create tree: %v", err)
	}
	for _, f := range []string{filepath.Join(root, "top.txt"), filepath.Join(root, "sub", "file.txt")} {
		if err := os.WriteFile(f, []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", f, err)
		}
	}
	return root
}

func TestWalkNesting(t *testing.T) {
	root := makeTree(t)
	rec := newRecorder()

	if err := New().Walk(root, rec); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	want := []string{
		"enter root 0",
		"enter sub 1",
		"file file.txt 2",
		"exit sub 1",
		"file top.txt 1",
		"exit root 0",
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("event order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkDepthLimitZero(t *testing.T) {
	// With limit 0 the root's children must never be enumerated: the
	// mock has no listing registered, so enumeration would fail loudly.
	fs := mocks.NewMockFileSystem()
	fs.Stats["/root"] = mocks.NewFileInfo("root", 0, true, time.Time{})

	w := &Walker{FS: fs, DepthLimit: 0}
	rec := newRecorder()
	if err := w.Walk("/root", rec); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	want := []string{"enter root 0", "exit root 0"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("event order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkDepthLimitOne(t *testing.T) {
	root := makeTree(t)
	w := New()
	w.DepthLimit = 1
	rec := newRecorder()

	if err := w.Walk(root, rec); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	want := []string{
		"enter root 0",
		"enter sub 1",
		"exit sub 1",
		"file top.txt 1",
		"exit root 0",
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("event order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkDirFilterIndependence(t *testing.T) {
	// A directory filter matching nothing must not suppress files.
	root := makeTree(t)
	w := New()
	w.DirFilter = filefilter.False()
	rec := newRecorder()

	if err := w.Walk(root, rec); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	want := []string{
		"enter root 0",
		"file top.txt 1",
		"exit root 0",
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("event order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkFileFilter(t *testing.T) {
	root := makeTree(t)
	w := New()
	w.FileFilter = filefilter.Name("file.txt")
	rec := newRecorder()

	if err := w.Walk(root, rec); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	want := []string{
		"enter root 0",
		"enter sub 1",
		"file file.txt 2",
		"exit sub 1",
		"exit root 0",
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("event order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkVetoSkipsChildrenAndExit(t *testing.T) {
	root := makeTree(t)
	rec := newRecorder()
	rec.veto["sub"] = true

	if err := New().Walk(root, rec); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	want := []string{
		"enter root 0",
		"enter sub 1",
		"file top.txt 1",
		"exit root 0",
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("event order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkCancellation(t *testing.T) {
	root := makeTree(t)
	rec := newRecorder()
	rec.cancel["file.txt"] = true

	err := New().Walk(root, rec)
	var cancel *CancelError
	if !errors.As(err, &cancel) {
		t.Fatalf("expected CancelError, got %v", err)
	}
	if filepath.Base(cancel.Path) != "file.txt" {
		t.Errorf("CancelError.Path = %q, expected file.txt", cancel.Path)
	}
	if cancel.Depth != 2 {
		t.Errorf("CancelError.Depth = %d, expected 2", cancel.Depth)
	}
}

func TestWalkCancellationSuppressed(t *testing.T) {
	root := makeTree(t)
	rec := newRecorder()
	rec.cancel["file.txt"] = true

	var handled *CancelError
	w := New()
	w.OnCancel = func(c *CancelError) error {
		handled = c
		return nil
	}

	if err := w.Walk(root, rec); err != nil {
		t.Fatalf("expected suppressed cancellation, got %v", err)
	}
	if handled == nil {
		t.Fatal("OnCancel was not invoked")
	}

	// Partial results up to (not including) the cancelling node.
	want := []string{
		"enter root 0",
		"enter sub 1",
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("partial event set mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkCancelRaisedByVisitIncludesNode(t *testing.T) {
	// A cancellation raised during a file visit is attributed to that
	// file, and suppression leaves it in the accumulated results.
	root := makeTree(t)
	var visited []string
	cancelled := false
	v := &FuncVisitor{
		OnFile: func(path string, depth int) error {
			visited = append(visited, filepath.Base(path))
			if filepath.Base(path) == "file.txt" {
				cancelled = true
			}
			return nil
		},
		OnCancel: func(path string, depth int) bool { return cancelled },
	}

	err := New().Walk(root, v)
	var cancel *CancelError
	if !errors.As(err, &cancel) {
		t.Fatalf("expected CancelError, got %v", err)
	}
	if filepath.Base(cancel.Path) != "file.txt" || cancel.Depth != 2 {
		t.Errorf("cancellation attributed to %q depth %d, expected file.txt depth 2", cancel.Path, cancel.Depth)
	}
	want := []string{"file.txt"}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Errorf("visited files mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkMissingRootVisitedAsLeaf(t *testing.T) {
	rec := newRecorder()
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	if err := New().Walk(missing, rec); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	want := []string{"file does-not-exist 0"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("event order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkEmptyRoot(t *testing.T) {
	if err := New().Walk("", newRecorder()); err == nil {
		t.Fatal("expected error for empty root")
	}
}

func TestWalkReadDirErrorAbortsWalk(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.AddDir("/root")
	fs.AddDir("/root/bad")
	fs.Errors["/root/bad"] = errors.New("permission denied")

	w := &Walker{FS: fs, DepthLimit: Unlimited}
	rec := newRecorder()
	err := w.Walk("/root", rec)
	if err == nil {
		t.Fatal("expected walk to fail on unreadable subdirectory")
	}
	var cancel *CancelError
	if errors.As(err, &cancel) {
		t.Fatal("I/O failure must not surface as cancellation")
	}
}

func TestWalkFuncVisitor(t *testing.T) {
	root := makeTree(t)
	var files []string
	v := &FuncVisitor{
		OnFile: func(path string, depth int) error {
			files = append(files, filepath.Base(path))
			return nil
		},
	}
	if err := New().Walk(root, v); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	want := []string{"file.txt", "top.txt"}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}
