package diffsum

import (
	"reflect"
	"testing"
)

func TestSummarizeOrdering(t *testing.T) {
	diff := "diff --git a/x b/x\n+++ b/x\n--- a/x\n+line1\n-line2\n"
	s := Summarize(diff)
	if got := s.Files(); !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("unexpected files %v", got)
	}
	want := []Change{{Kind: Added, Text: "line1"}, {Kind: Removed, Text: "line2"}}
	if got := s.Changes("x"); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected changes %v", got)
	}
}

func TestSummarizeMultipleFilesKeepDiscoveryOrder(t *testing.T) {
	diff := "diff --git a/b.txt b/b.txt\n+one\ndiff --git a/a.txt b/a.txt\n-two\n+three\n"
	s := Summarize(diff)
	if got := s.Files(); !reflect.DeepEqual(got, []string{"b.txt", "a.txt"}) {
		t.Fatalf("unexpected file order %v", got)
	}
	if got := s.Changes("a.txt"); len(got) != 2 || got[0].Kind != Removed || got[1].Kind != Added {
		t.Fatalf("unexpected changes for a.txt: %v", got)
	}
}

func TestSummarizeNoHeader(t *testing.T) {
	s := Summarize("+added line\n-removed line\ncontext\n")
	if s.Len() != 0 {
		t.Fatalf("expected empty summary without diff header, got %d files", s.Len())
	}
}

func TestSummarizeHeaderOnlyFileExcluded(t *testing.T) {
	diff := "diff --git a/x b/x\n+++ b/x\n--- a/x\n@@ -1 +1 @@\n context only\n"
	s := Summarize(diff)
	if s.Len() != 0 {
		t.Fatalf("file without +/- body lines must not appear, got %v", s.Files())
	}
}

func TestSummarizeMalformedHeaderKeepsCurrentFile(t *testing.T) {
	diff := "diff --git a/x b/x\n+first\ndiff --git malformed\n+second\n"
	s := Summarize(diff)
	if got := s.Changes("x"); len(got) != 2 {
		t.Fatalf("expected both changes attributed to x, got %v", got)
	}
}

func TestSummarizeNeverFails(t *testing.T) {
	inputs := []string{"", "\x00\xff garbage\n+++\n---", "diff --git", "+\n-\n"}
	for _, in := range inputs {
		s := Summarize(in)
		if s == nil {
			t.Fatalf("nil summary for %q", in)
		}
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	diff := "diff --git a/x b/x\n+line1\n-line2\n"
	first := Summarize(diff)
	second := Summarize(diff)
	if !reflect.DeepEqual(first.Files(), second.Files()) {
		t.Fatalf("file sets differ between runs")
	}
	if !reflect.DeepEqual(first.Changes("x"), second.Changes("x")) {
		t.Fatalf("changes differ between runs")
	}
}

func TestFormat(t *testing.T) {
	diff := "diff --git a/x b/x\n+  added  \n-removed\n"
	got := Summarize(diff).Format()
	want := "File: x\n  Code Added: added\n  Code Removed: removed\n"
	if got != want {
		t.Fatalf("unexpected format output:\n%q\nwant:\n%q", got, want)
	}
}
