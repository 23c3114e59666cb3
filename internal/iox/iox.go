// Package iox provides small stream helpers: buffered copying, byte
// counting wrappers, content comparison, and line handling.
package iox

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sync/atomic"
)

// Line separator conventions.
const (
	LineSeparatorUnix    = "\n"
	LineSeparatorWindows = "\r\n"
)

// defaultBufferSize matches the usual page-multiple copy buffer.
const defaultBufferSize = 32 * 1024

// Copy copies from src to dst using an internal buffer and returns the
// number of bytes copied.
func Copy(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, defaultBufferSize)
	return io.CopyBuffer(dst, src, buf)
}

// CountingReader wraps a reader and counts the bytes read through it.
// The count is safe to read concurrently with reads.
type CountingReader struct {
	r io.Reader
	n atomic.Int64
}

// NewCountingReader wraps r.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{r: r}
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

// Count returns the number of bytes read so far.
func (c *CountingReader) Count() int64 { return c.n.Load() }

// CountingWriter wraps a writer and counts the bytes written through
// it. The count is safe to read concurrently with writes.
type CountingWriter struct {
	w io.Writer
	n atomic.Int64
}

// NewCountingWriter wraps w.
func NewCountingWriter(w io.Writer) *CountingWriter {
	return &CountingWriter{w: w}
}

func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n.Add(int64(n))
	return n, err
}

// Count returns the number of bytes written so far.
func (c *CountingWriter) Count() int64 { return c.n.Load() }

// ContentEquals reports whether two readers yield identical bytes.
func ContentEquals(a, b io.Reader) (bool, error) {
	ba := bufio.NewReader(a)
	bb := bufio.NewReader(b)
	for {
		chA, errA := ba.ReadByte()
		chB, errB := bb.ReadByte()
		if errA == io.EOF && errB == io.EOF {
			return true, nil
		}
		if errA != nil && errA != io.EOF {
			return false, errA
		}
		if errB != nil && errB != io.EOF {
			return false, errB
		}
		if (errA == io.EOF) != (errB == io.EOF) || chA != chB {
			return false, nil
		}
	}
}

// ContentEqualsIgnoreEOL reports whether two readers yield the same
// lines, ignoring the line-separator convention.
func ContentEqualsIgnoreEOL(a, b io.Reader) (bool, error) {
	sa := bufio.NewScanner(a)
	sb := bufio.NewScanner(b)
	for {
		okA := sa.Scan()
		okB := sb.Scan()
		if err := sa.Err(); err != nil {
			return false, err
		}
		if err := sb.Err(); err != nil {
			return false, err
		}
		if !okA || !okB {
			return okA == okB, nil
		}
		if !bytes.Equal(sa.Bytes(), sb.Bytes()) {
			return false, nil
		}
	}
}

// ReadLines reads all lines from r, without separators.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}
	return lines, nil
}

// Skip discards exactly n bytes from r. It fails if the stream ends
// before n bytes were skipped.
func Skip(r io.Reader, n int64) error {
	copied, err := io.CopyN(io.Discard, r, n)
	if err != nil {
		return fmt.Errorf("skipped %d of %d bytes: %w", copied, n, err)
	}
	return nil
}

// Drain consumes the remainder of r and returns the number of bytes
// discarded.
func Drain(r io.Reader) (int64, error) {
	return io.Copy(io.Discard, r)
}
