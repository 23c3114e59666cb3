// Package walker implements depth-first directory traversal with
// filtering, depth limiting, and cooperative cancellation.
//
// A walk visits the root and, depth-first, every descendant permitted
// by the filters, invoking visitor callbacks on directory entry, on
// each file, and on directory exit. Each walk invocation is
// independent and synchronous; concurrent walks are safe as long as
// their visitors do not share unsynchronized state.
package walker

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mcdonaldj/fskit/internal/adapters/osfs"
	"github.com/mcdonaldj/fskit/internal/filefilter"
	"github.com/mcdonaldj/fskit/internal/ports"
)

// Unlimited disables the depth limit.
const Unlimited = -1

// CancelError reports a cooperatively cancelled walk, carrying the
// node being visited when cancellation was observed and its depth.
type CancelError struct {
	Path  string
	Depth int
}

func (e *CancelError) Error() string {
	return fmt.Sprintf("walk cancelled at %s (depth %d)", e.Path, e.Depth)
}

// Visitor receives traversal callbacks. EnterDir may veto descent by
// returning false, in which case the directory's children are skipped
// and ExitDir is not called for it. Any non-nil error aborts the walk.
type Visitor interface {
	// EnterDir is called when a directory is reached, before its
	// children are enumerated.
	EnterDir(path string, depth int) (descend bool, err error)

	// VisitFile is called for every file surviving the file filter.
	VisitFile(path string, depth int) error

	// ExitDir is called after a directory's children have been
	// processed, or immediately after EnterDir when the depth limit
	// suppressed enumeration.
	ExitDir(path string, depth int) error
}

// Canceller is an optional interface a Visitor may implement. It is
// polled before every callback; returning true cancels the walk at
// that node.
type Canceller interface {
	ShouldCancel(path string, depth int) bool
}

// FuncVisitor adapts plain functions to the Visitor interface. Nil
// fields default to "descend", "do nothing", and "never cancel".
type FuncVisitor struct {
	OnEnterDir func(path string, depth int) (bool, error)
	OnFile     func(path string, depth int) error
	OnExitDir  func(path string, depth int) error
	OnCancel   func(path string, depth int) bool
}

func (f *FuncVisitor) EnterDir(path string, depth int) (bool, error) {
	if f.OnEnterDir == nil {
		return true, nil
	}
	return f.OnEnterDir(path, depth)
}

func (f *FuncVisitor) VisitFile(path string, depth int) error {
	if f.OnFile == nil {
		return nil
	}
	return f.OnFile(path, depth)
}

func (f *FuncVisitor) ExitDir(path string, depth int) error {
	if f.OnExitDir == nil {
		return nil
	}
	return f.OnExitDir(path, depth)
}

func (f *FuncVisitor) ShouldCancel(path string, depth int) bool {
	return f.OnCancel != nil && f.OnCancel(path, depth)
}

// Walker drives depth-first traversal over a ports.FileSystem.
// The zero value must not be used; construct with New.
type Walker struct {
	// FS is the filesystem the walk runs against.
	FS ports.FileSystem

	// DirFilter is applied to subdirectories found during descent. A
	// rejected directory is not entered. Nil accepts everything. The
	// filter never applies to the root.
	DirFilter filefilter.Filter

	// FileFilter is applied to files found during descent. Nil
	// accepts everything. Independent of DirFilter: a directory
	// filter never suppresses files and vice versa.
	FileFilter filefilter.Filter

	// DepthLimit stops enumeration at the given depth; Unlimited (-1)
	// disables the limit. With a limit of 0 only the root is visited.
	DepthLimit int

	// OnCancel is invoked once when a walk is cancelled. Returning
	// nil suppresses the cancellation, leaving whatever the visitor
	// accumulated so far in place. Nil means the CancelError is
	// returned from Walk.
	OnCancel func(*CancelError) error
}

// New creates a Walker over the real filesystem with no filters and no
// depth limit.
func New() *Walker {
	return &Walker{FS: osfs.New(), DepthLimit: Unlimited}
}

// frame is one directory being processed on the explicit traversal
// stack. Children are partitioned up front so subdirectories are
// descended into before files are visited.
type frame struct {
	path  string
	depth int
	dirs  []string
	files []string
	di    int
	fi    int
}

// Walk traverses the tree rooted at root, invoking the visitor's
// callbacks. The root is always visited at depth 0, even when it
// matches no filter; a root that is not a readable directory is
// reported once through VisitFile. An empty root is a programmer
// error. Cancellation surfaces as *CancelError unless suppressed by
// OnCancel.
func (w *Walker) Walk(root string, v Visitor) error {
	if root == "" {
		return errors.New("walker: empty root")
	}
	if v == nil {
		return errors.New("walker: nil visitor")
	}

	err := w.walk(root, v)
	var cancel *CancelError
	if errors.As(err, &cancel) {
		if w.OnCancel != nil {
			return w.OnCancel(cancel)
		}
		return cancel
	}
	return err
}

func (w *Walker) walk(root string, v Visitor) error {
	info, err := w.FS.Stat(root)
	if err != nil || !info.IsDir() {
		// A missing or non-directory root is still reported once as a
		// leaf. Deliberate quirk kept for compatibility; see DESIGN.md.
		if err := w.checkCancel(v, root, 0); err != nil {
			return err
		}
		return v.VisitFile(root, 0)
	}

	var stack []*frame

	enter := func(path string, depth int) error {
		if err := w.checkCancel(v, path, depth); err != nil {
			return err
		}
		descend, err := v.EnterDir(path, depth)
		if err != nil {
			return err
		}
		if !descend {
			// Veto: children skipped, and no ExitDir for this node.
			return nil
		}
		fr := &frame{path: path, depth: depth}
		if w.DepthLimit < 0 || depth < w.DepthLimit {
			entries, err := w.FS.ReadDir(path)
			if err != nil {
				return fmt.Errorf("listing %s: %w", path, err)
			}
			for _, e := range entries {
				full := filepath.Join(path, e.Name())
				if e.IsDir() {
					if w.DirFilter == nil || w.DirFilter(full, e) {
						fr.dirs = append(fr.dirs, full)
					}
				} else if w.FileFilter == nil || w.FileFilter(full, e) {
					fr.files = append(fr.files, full)
				}
			}
		}
		stack = append(stack, fr)
		return nil
	}

	if err := enter(root, 0); err != nil {
		return err
	}

	for len(stack) > 0 {
		fr := stack[len(stack)-1]

		if fr.di < len(fr.dirs) {
			dir := fr.dirs[fr.di]
			fr.di++
			if err := enter(dir, fr.depth+1); err != nil {
				return err
			}
			continue
		}

		if fr.fi < len(fr.files) {
			file := fr.files[fr.fi]
			fr.fi++
			if err := w.checkCancel(v, file, fr.depth+1); err != nil {
				return err
			}
			if err := v.VisitFile(file, fr.depth+1); err != nil {
				return err
			}
			// Polled again after the visit so a cancellation raised by
			// the visit itself is attributed to this node.
			if err := w.checkCancel(v, file, fr.depth+1); err != nil {
				return err
			}
			continue
		}

		if err := w.checkCancel(v, fr.path, fr.depth); err != nil {
			return err
		}
		if err := v.ExitDir(fr.path, fr.depth); err != nil {
			return err
		}
		stack = stack[:len(stack)-1]
	}
	return nil
}

func (w *Walker) checkCancel(v Visitor, path string, depth int) error {
	if c, ok := v.(Canceller); ok && c.ShouldCancel(path, depth) {
		return &CancelError{Path: path, Depth: depth}
	}
	return nil
}
