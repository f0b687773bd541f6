// Package diffsum turns unified diff text into a per-file summary of added and
// removed lines. It classifies content only; hunk headers and line numbers are
// ignored.
package diffsum

import (
	"fmt"
	"regexp"
	"strings"
)

var diffHeaderRegexp = regexp.MustCompile(`^diff --git a/(.*?) b/(.*?)$`)

// ChangeKind classifies a single changed line.
type ChangeKind string

const (
	Added   ChangeKind = "added"
	Removed ChangeKind = "removed"
)

// Change is one line of code change, owned by the file it belongs to.
type Change struct {
	Kind ChangeKind
	Text string
}

// Summary maps file paths to their changes, preserving diff appearance order.
type Summary struct {
	paths   []string
	changes map[string][]Change
}

// Files returns file paths in discovery order.
func (s *Summary) Files() []string {
	return s.paths
}

// Changes returns the ordered changes for path, nil when the file had none.
func (s *Summary) Changes(path string) []Change {
	return s.changes[path]
}

// Len reports how many files carry at least one change.
func (s *Summary) Len() int {
	return len(s.paths)
}

func (s *Summary) append(path string, c Change) {
	if _, ok := s.changes[path]; !ok {
		s.paths = append(s.paths, path)
	}
	s.changes[path] = append(s.changes[path], c)
}

// Summarize scans diffText once, left to right. A `diff --git` header switches
// the current file to the post-image path; `+`/`-` body lines under an active
// file are recorded; everything else is skipped. It accepts any input and
// never fails: malformed or empty text yields an empty Summary. A header line
// that does not match the expected pattern leaves the current file unchanged.
func Summarize(diffText string) *Summary {
	summary := &Summary{changes: make(map[string][]Change)}
	currentFile := ""
	for _, line := range strings.Split(diffText, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git"):
			if m := diffHeaderRegexp.FindStringSubmatch(line); m != nil {
				currentFile = m[2]
			}
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			// file headers carry no change content
		case currentFile != "" && strings.HasPrefix(line, "+"):
			summary.append(currentFile, Change{Kind: Added, Text: strings.TrimSpace(line[1:])})
		case currentFile != "" && strings.HasPrefix(line, "-"):
			summary.append(currentFile, Change{Kind: Removed, Text: strings.TrimSpace(line[1:])})
		}
	}
	return summary
}

// Format renders the summary as prompt-ready text, one file section per block.
func (s *Summary) Format() string {
	var b strings.Builder
	for _, path := range s.paths {
		fmt.Fprintf(&b, "File: %s\n", path)
		for _, c := range s.changes[path] {
			label := "Code Added"
			if c.Kind == Removed {
				label = "Code Removed"
			}
			fmt.Fprintf(&b, "  %s: %s\n", label, c.Text)
		}
	}
	return b.String()
}
