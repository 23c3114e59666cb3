package tui

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffLine represents a single line in the diff output
type DiffLine struct {
	LineNum1 int    // Line number in the first file (0 if added)
	LineNum2 int    // Line number in the second file (0 if deleted)
	Type     rune   // '+' added, '-' deleted, ' ' unchanged
	Content  string // Line content
}

// FileDiffResult contains the line-by-line diff of two files
type FileDiffResult struct {
	Path1    string
	Path2    string
	Lines    []DiffLine
	IsBinary bool
	Error    string
}

// Equal reports whether the diff found no differences.
func (r *FileDiffResult) Equal() bool {
	for _, l := range r.Lines {
		if l.Type != ' ' {
			return false
		}
	}
	return true
}

// IsBinaryContent checks if content appears to be binary
func IsBinaryContent(content string) bool {
	if len(content) == 0 {
		return false
	}
	// Check first 8000 bytes for null bytes or invalid UTF-8
	checkLen := len(content)
	if checkLen > 8000 {
		checkLen = 8000
	}
	sample := content[:checkLen]

	if strings.Contains(sample, "\x00") {
		return true
	}
	if !utf8.ValidString(sample) {
		return true
	}

	return false
}

// ComputeFileDiff computes the line-by-line diff between two files
func ComputeFileDiff(path1, path2 string) (*FileDiffResult, error) {
	result := &FileDiffResult{
		Path1: path1,
		Path2: path2,
	}

	data1, err := os.ReadFile(path1)
	if err != nil {
		result.Error = "Error reading " + path1 + ": " + err.Error()
		return result, nil
	}
	data2, err := os.ReadFile(path2)
	if err != nil {
		result.Error = "Error reading " + path2 + ": " + err.Error()
		return result, nil
	}

	content1, content2 := string(data1), string(data2)
	if IsBinaryContent(content1) || IsBinaryContent(content2) {
		result.IsBinary = true
		return result, nil
	}

	// Compute a line-mode diff using go-diff
	dmp := diffmatchpatch.New()
	a, b, lineArr := dmp.DiffLinesToChars(content1, content2)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArr)

	result.Lines = convertToLineDiff(diffs)

	return result, nil
}

// convertToLineDiff flattens line-mode diffs into numbered DiffLines
func convertToLineDiff(diffs []diffmatchpatch.Diff) []DiffLine {
	var lines []DiffLine
	ln1, ln2 := 0, 0

	for _, d := range diffs {
		for _, content := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				ln1++
				lines = append(lines, DiffLine{LineNum1: ln1, Type: '-', Content: content})
			case diffmatchpatch.DiffInsert:
				ln2++
				lines = append(lines, DiffLine{LineNum2: ln2, Type: '+', Content: content})
			default:
				ln1++
				ln2++
				lines = append(lines, DiffLine{LineNum1: ln1, LineNum2: ln2, Type: ' ', Content: content})
			}
		}
	}

	return lines
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
