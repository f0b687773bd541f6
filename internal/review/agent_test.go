package review

import (
	"strings"
	"testing"
)

func TestBuildAnalysisPromptTruncatesDiff(t *testing.T) {
	bundle := Bundle{
		Metadata: Metadata{Raw: `{"title":"big","body":"b","user":{"login":"dev"}}`},
		DiffText: strings.Repeat("x", maxDiffPromptChars+500),
	}
	prompt := buildAnalysisPrompt(bundle)
	if strings.Contains(prompt, strings.Repeat("x", maxDiffPromptChars+1)) {
		t.Fatalf("diff section exceeds %d chars", maxDiffPromptChars)
	}
	if !strings.Contains(prompt, strings.Repeat("x", maxDiffPromptChars)) {
		t.Fatalf("diff prefix must be kept")
	}
	if !strings.Contains(prompt, "Title: big") || !strings.Contains(prompt, "Author: dev") {
		t.Fatalf("metadata missing from prompt:\n%s", prompt[:200])
	}
}

func TestBuildAnalysisPromptTruncatesFileContents(t *testing.T) {
	bundle := Bundle{
		Metadata: Metadata{Raw: `{"title":"t"}`},
		Files: []FileContent{
			{Path: "a.go", Content: strings.Repeat("y", maxFilesPromptChars)},
			{Path: "b.go", Content: "never reached"},
		},
	}
	prompt := buildAnalysisPrompt(bundle)
	if strings.Contains(prompt, "never reached") {
		t.Fatalf("file serialization must be cut at %d chars", maxFilesPromptChars)
	}
	if !strings.Contains(prompt, "### a.go") {
		t.Fatalf("leading file must survive truncation")
	}
}

func TestBuildAnalysisPromptMissingMetadata(t *testing.T) {
	prompt := buildAnalysisPrompt(Bundle{Metadata: Metadata{Raw: "{}"}})
	if !strings.Contains(prompt, "Title: N/A") || !strings.Contains(prompt, "Description: N/A") {
		t.Fatalf("missing metadata must render as N/A:\n%s", prompt[:200])
	}
}

func TestTruncateShortInputUnchanged(t *testing.T) {
	if got := truncate("abc", 10); got != "abc" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc" {
		t.Fatalf("unexpected truncation %q", got)
	}
}
