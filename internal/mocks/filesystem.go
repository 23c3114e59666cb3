// Package mocks provides mock implementations for testing.
package mocks

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mcdonaldj/fskit/internal/ports"
)

// MockFileSystem implements ports.FileSystem for testing.
type MockFileSystem struct {
	// Files maps paths to file contents for ReadFile/WriteFile.
	Files map[string][]byte
	// Dirs maps paths to directory entries for ReadDir, in the order
	// they should be yielded.
	Dirs map[string][]os.DirEntry
	// Stats maps paths to FileInfo for Stat.
	Stats map[string]os.FileInfo
	// Errors maps paths to errors (for simulating failures).
	Errors map[string]error
}

// NewMockFileSystem creates a new mock filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:  make(map[string][]byte),
		Dirs:   make(map[string][]os.DirEntry),
		Stats:  make(map[string]os.FileInfo),
		Errors: make(map[string]error),
	}
}

// AddDir registers a directory and its entry in the parent listing.
func (m *MockFileSystem) AddDir(path string) {
	m.Stats[path] = &mockFileInfo{name: filepath.Base(path), isDir: true, mode: os.ModeDir | 0755}
	if _, ok := m.Dirs[path]; !ok {
		m.Dirs[path] = nil
	}
	m.addToParent(path, true, 0)
}

// AddFile registers a file with content and its entry in the parent listing.
func (m *MockFileSystem) AddFile(path string, content []byte) {
	m.Files[path] = content
	m.Stats[path] = &mockFileInfo{name: filepath.Base(path), size: int64(len(content)), mode: 0644}
	m.addToParent(path, false, int64(len(content)))
}

func (m *MockFileSystem) addToParent(path string, isDir bool, size int64) {
	parent := filepath.Dir(path)
	if parent == path {
		return
	}
	entry := &mockDirEntry{info: &mockFileInfo{
		name:  filepath.Base(path),
		isDir: isDir,
		size:  size,
	}}
	m.Dirs[parent] = append(m.Dirs[parent], entry)
}

// ReadDir reads the named directory and returns directory entries.
func (m *MockFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	if entries, ok := m.Dirs[name]; ok {
		return entries, nil
	}
	return nil, os.ErrNotExist
}

// Stat returns file info for the named file.
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	if info, ok := m.Stats[name]; ok {
		return info, nil
	}
	if content, ok := m.Files[name]; ok {
		return &mockFileInfo{name: filepath.Base(name), size: int64(len(content))}, nil
	}
	return nil, os.ErrNotExist
}

// Lstat behaves like Stat; the mock has no symlinks.
func (m *MockFileSystem) Lstat(name string) (os.FileInfo, error) {
	return m.Stat(name)
}

// MkdirAll creates a directory along with any necessary parents.
func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	if err, ok := m.Errors[path]; ok {
		return err
	}
	m.Stats[path] = &mockFileInfo{name: filepath.Base(path), isDir: true, mode: os.ModeDir | perm}
	return nil
}

// WriteFile writes data to the named file, creating it if necessary.
func (m *MockFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if err, ok := m.Errors[name]; ok {
		return err
	}
	m.Files[name] = data
	return nil
}

// ReadFile reads the named file and returns the contents.
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	if content, ok := m.Files[name]; ok {
		return content, nil
	}
	return nil, os.ErrNotExist
}

// Remove removes the named file or empty directory.
func (m *MockFileSystem) Remove(name string) error {
	if err, ok := m.Errors[name]; ok {
		return err
	}
	delete(m.Files, name)
	delete(m.Stats, name)
	return nil
}

// RemoveAll removes path and any children it contains.
func (m *MockFileSystem) RemoveAll(path string) error {
	if err, ok := m.Errors[path]; ok {
		return err
	}
	for k := range m.Files {
		if strings.HasPrefix(k, path) {
			delete(m.Files, k)
		}
	}
	for k := range m.Stats {
		if strings.HasPrefix(k, path) {
			delete(m.Stats, k)
		}
	}
	return nil
}

// Rename renames (moves) oldpath to newpath.
func (m *MockFileSystem) Rename(oldpath, newpath string) error {
	if err, ok := m.Errors[oldpath]; ok {
		return err
	}
	if content, ok := m.Files[oldpath]; ok {
		m.Files[newpath] = content
		delete(m.Files, oldpath)
	}
	if info, ok := m.Stats[oldpath]; ok {
		m.Stats[newpath] = info
		delete(m.Stats, oldpath)
	}
	return nil
}

// Chtimes changes the recorded modification time of the named file.
func (m *MockFileSystem) Chtimes(name string, atime, mtime time.Time) error {
	if err, ok := m.Errors[name]; ok {
		return err
	}
	info, ok := m.Stats[name]
	if !ok {
		return os.ErrNotExist
	}
	if fi, ok := info.(*mockFileInfo); ok {
		fi.modTime = mtime
	}
	return nil
}

// Open opens the named file for reading.
func (m *MockFileSystem) Open(name string) (fs.File, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	content, ok := m.Files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return &mockFile{name: name, content: content}, nil
}

// Create creates or truncates the named file.
func (m *MockFileSystem) Create(name string) (*os.File, error) {
	// A real *os.File cannot be faked; tests should use WriteFile.
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	m.Files[name] = []byte{}
	return nil, errors.New("mock Create returns no *os.File - use WriteFile instead")
}

// mockFileInfo implements os.FileInfo for testing.
type mockFileInfo struct {
	name    string
	size    int64
	mode    os.FileMode
	modTime time.Time
	isDir   bool
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.size }
func (fi *mockFileInfo) Mode() os.FileMode  { return fi.mode }
func (fi *mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *mockFileInfo) IsDir() bool        { return fi.isDir }
func (fi *mockFileInfo) Sys() interface{}   { return nil }

// NewFileInfo builds an os.FileInfo for tests.
func NewFileInfo(name string, size int64, isDir bool, modTime time.Time) os.FileInfo {
	return &mockFileInfo{name: name, size: size, isDir: isDir, modTime: modTime}
}

// mockDirEntry implements os.DirEntry for testing.
type mockDirEntry struct {
	info *mockFileInfo
}

func (d *mockDirEntry) Name() string               { return d.info.name }
func (d *mockDirEntry) IsDir() bool                { return d.info.isDir }
func (d *mockDirEntry) Type() fs.FileMode          { return d.info.mode.Type() }
func (d *mockDirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

// NewDirEntry builds an os.DirEntry for tests.
func NewDirEntry(name string, isDir bool, size int64, modTime time.Time) os.DirEntry {
	mode := os.FileMode(0644)
	if isDir {
		mode = os.ModeDir | 0755
	}
	return &mockDirEntry{info: &mockFileInfo{
		name: name, isDir: isDir, size: size, modTime: modTime, mode: mode,
	}}
}

// mockFile implements fs.File for testing.
type mockFile struct {
	name    string
	content []byte
	offset  int
}

func (f *mockFile) Stat() (fs.FileInfo, error) {
	return &mockFileInfo{name: f.name, size: int64(len(f.content))}, nil
}

func (f *mockFile) Read(p []byte) (int, error) {
	if f.offset >= len(f.content) {
		return 0, io.EOF
	}
	n := copy(p, f.content[f.offset:])
	f.offset += n
	return n, nil
}

func (f *mockFile) Close() error { return nil }

// Compile-time check that MockFileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*MockFileSystem)(nil)
