// Package fileutil provides file manipulation helpers: copying,
// deletion strategies, directory sizing, touch, and checksums.
package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mcdonaldj/fskit/internal/iox"
	"github.com/mcdonaldj/fskit/internal/walker"
)

// CopyFile copies a regular file, preserving its permission bits and
// modification time. The destination's parent directory must exist.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("source is a directory: %s", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	if _, err := iox.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying content: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing destination: %w", err)
	}

	// Best effort; some filesystems refuse time changes.
	_ = os.Chtimes(dst, time.Now(), info.ModTime())
	return nil
}

// CopyDir recursively copies a directory tree. Destination directories
// are created as needed; existing destination files are overwritten.
func CopyDir(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source is not a directory: %s", src)
	}

	w := walker.New()
	v := &walker.FuncVisitor{
		OnEnterDir: func(path string, depth int) (bool, error) {
			target, err := rebase(src, dst, path)
			if err != nil {
				return false, err
			}
			if err := os.MkdirAll(target, 0755); err != nil {
				return false, fmt.Errorf("creating %s: %w", target, err)
			}
			return true, nil
		},
		OnFile: func(path string, depth int) error {
			target, err := rebase(src, dst, path)
			if err != nil {
				return err
			}
			return CopyFile(path, target)
		},
	}
	return w.Walk(src, v)
}

func rebase(src, dst, path string) (string, error) {
	rel, err := filepath.Rel(src, path)
	if err != nil {
		return "", fmt.Errorf("relativizing %s: %w", path, err)
	}
	return filepath.Join(dst, rel), nil
}

// SizeOf returns the size of a file, or the recursive size of a
// directory.
func SizeOf(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return info.Size(), nil
	}
	return SizeOfDir(path)
}

// SizeOfDir returns the total size of all files under the directory.
func SizeOfDir(path string) (int64, error) {
	var total int64
	w := walker.New()
	v := &walker.FuncVisitor{
		OnFile: func(p string, depth int) error {
			info, err := os.Lstat(p)
			if err != nil {
				return err
			}
			if info.Mode().IsRegular() {
				total += info.Size()
			}
			return nil
		},
	}
	if err := w.Walk(path, v); err != nil {
		return 0, err
	}
	return total, nil
}

// Touch creates an empty file if the path does not exist, or updates
// its modification time to now.
func Touch(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		return f.Close()
	}
	now := time.Now()
	return os.Chtimes(path, now, now)
}

// ForceDelete removes a file or directory tree, failing if the path
// does not exist.
func ForceDelete(path string) error {
	if _, err := os.Lstat(path); err != nil {
		return fmt.Errorf("force delete: %w", err)
	}
	return os.RemoveAll(path)
}

// DeleteQuietly removes a file or directory tree, reporting success
// and swallowing every error.
func DeleteQuietly(path string) bool {
	if path == "" {
		return false
	}
	if _, err := os.Lstat(path); err != nil {
		return false
	}
	return os.RemoveAll(path) == nil
}

// CleanDir removes everything inside the directory, leaving the
// directory itself in place.
func CleanDir(path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("listing %s: %w", path, err)
	}
	for _, e := range entries {
		child := filepath.Join(path, e.Name())
		if err := os.RemoveAll(child); err != nil {
			return fmt.Errorf("removing %s: %w", child, err)
		}
	}
	return nil
}

// ContentEquals reports whether two files contain identical bytes.
// Two missing files are not equal; the caller sees the stat error.
func ContentEquals(path1, path2 string) (bool, error) {
	f1, err := os.Open(path1)
	if err != nil {
		return false, err
	}
	defer f1.Close()
	f2, err := os.Open(path2)
	if err != nil {
		return false, err
	}
	defer f2.Close()
	return iox.ContentEquals(f1, f2)
}

// Checksum calculates the SHA-256 hash of a file.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FormatSize formats bytes as human-readable.
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
