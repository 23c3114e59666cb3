// Package snapshot captures the state of a directory tree so that two
// captures can be compared for created, changed, and deleted paths.
// Snapshots serialize to JSON for comparison across process runs.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mcdonaldj/fskit/internal/walker"
)

// Entry records the observed state of one path.
type Entry struct {
	Path    string    `json:"path"` // slash-separated, relative to root
	Size    int64     `json:"size_bytes"`
	ModTime time.Time `json:"mod_time"`
	Dir     bool      `json:"dir,omitempty"`
}

// Snapshot is the captured state of a tree at a point in time.
type Snapshot struct {
	Root    string  `json:"root"`
	TakenAt time.Time `json:"taken_at"`
	Entries []Entry `json:"entries"`
}

// Take walks the tree rooted at root and records every directory and
// file under it. The root itself is not recorded.
func Take(root string) (*Snapshot, error) {
	s := &Snapshot{Root: root, TakenAt: time.Now()}

	record := func(path string, dir bool) error {
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", path, err)
		}
		info, err := os.Lstat(path)
		if err != nil {
			return err
		}
		e := Entry{Path: filepath.ToSlash(rel), ModTime: info.ModTime(), Dir: dir}
		if !dir {
			e.Size = info.Size()
		}
		s.Entries = append(s.Entries, e)
		return nil
	}

	w := walker.New()
	v := &walker.FuncVisitor{
		OnEnterDir: func(path string, depth int) (bool, error) {
			return true, record(path, true)
		},
		OnFile: func(path string, depth int) error {
			return record(path, false)
		},
	}
	if err := w.Walk(root, v); err != nil {
		return nil, err
	}

	sort.Slice(s.Entries, func(i, j int) bool { return s.Entries[i].Path < s.Entries[j].Path })
	return s, nil
}

// Load reads a snapshot from a JSON file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &s, nil
}

// Save writes the snapshot as indented JSON, creating parent
// directories as needed.
func (s *Snapshot) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Changes lists the relative paths that differ between two snapshots,
// each slice sorted.
type Changes struct {
	Created []string
	Changed []string
	Deleted []string
}

// Empty reports whether no differences were found.
func (c Changes) Empty() bool {
	return len(c.Created) == 0 && len(c.Changed) == 0 && len(c.Deleted) == 0
}

// Diff compares two snapshots of the same root. A file counts as
// changed when its size or modification time moved; directories only
// appear as created or deleted.
func Diff(old, current *Snapshot) Changes {
	var c Changes

	prev := make(map[string]Entry, len(old.Entries))
	for _, e := range old.Entries {
		prev[e.Path] = e
	}

	seen := make(map[string]bool, len(current.Entries))
	for _, e := range current.Entries {
		seen[e.Path] = true
		before, ok := prev[e.Path]
		if !ok {
			c.Created = append(c.Created, e.Path)
			continue
		}
		if !e.Dir && (before.Size != e.Size || !before.ModTime.Equal(e.ModTime) || before.Dir) {
			c.Changed = append(c.Changed, e.Path)
		}
	}

	for _, e := range old.Entries {
		if !seen[e.Path] {
			c.Deleted = append(c.Deleted, e.Path)
		}
	}

	sort.Strings(c.Created)
	sort.Strings(c.Changed)
	sort.Strings(c.Deleted)
	return c
}
