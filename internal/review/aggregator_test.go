package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/roivaz/pr-review-agent/internal/logging"
	"github.com/roivaz/pr-review-agent/internal/mcpclient"
)

type fakeSession struct {
	resolved map[mcpclient.Capability]string
	results  map[string]string
	failing  map[string]error
	calls    []string
}

func (f *fakeSession) Resolve(_ context.Context, capability mcpclient.Capability) (string, error) {
	name, ok := f.resolved[capability]
	if !ok {
		return "", fmt.Errorf("%w: %s", mcpclient.ErrNoTool, capability)
	}
	return name, nil
}

func (f *fakeSession) Call(_ context.Context, name string, args map[string]any) (string, error) {
	key := name
	if path, ok := args["path"].(string); ok {
		key = name + ":" + path
	}
	f.calls = append(f.calls, key)
	if err, ok := f.failing[key]; ok {
		return "", err
	}
	if res, ok := f.results[key]; ok {
		return res, nil
	}
	return "", fmt.Errorf("unexpected call %s", key)
}

func (f *fakeSession) CallCapability(ctx context.Context, capability mcpclient.Capability, args map[string]any) (string, error) {
	name, err := f.Resolve(ctx, capability)
	if err != nil {
		return "", err
	}
	return f.Call(ctx, name, args)
}

func discardLog() logging.Logger {
	return logging.New(logr.Discard())
}

func TestFetchBundleMetadataFallbackStillFetchesDiff(t *testing.T) {
	session := &fakeSession{
		resolved: map[mcpclient.Capability]string{
			mcpclient.CapabilityPullRequest: "get_pull_request",
			mcpclient.CapabilityDiff:        "get_diff",
		},
		results: map[string]string{"get_diff": "diff --git a/x b/x\n+line\n"},
		failing: map[string]error{"get_pull_request": errors.New("boom")},
	}

	bundle := NewAggregator(session, discardLog()).FetchBundle(context.Background(), "acme", "widgets", 42)

	if bundle.Metadata.Err == nil {
		t.Fatalf("expected metadata error marker")
	}
	if got := bundle.Metadata.Title(); got != "PR #42" {
		t.Fatalf("expected synthesized title, got %q", got)
	}
	if got := bundle.Metadata.Body(); got != "Unable to fetch PR description" {
		t.Fatalf("expected synthesized body, got %q", got)
	}
	if bundle.DiffText != "diff --git a/x b/x\n+line\n" {
		t.Fatalf("diff phase must still run, got %q", bundle.DiffText)
	}
}

func TestFetchBundleDiffPlaceholders(t *testing.T) {
	session := &fakeSession{
		resolved: map[mcpclient.Capability]string{
			mcpclient.CapabilityPullRequest: "get_pull_request",
		},
		results: map[string]string{"get_pull_request": `{"title":"t"}`},
	}
	bundle := NewAggregator(session, discardLog()).FetchBundle(context.Background(), "acme", "widgets", 1)
	if bundle.DiffText != "Unable to fetch PR diff" {
		t.Fatalf("expected no-tool placeholder, got %q", bundle.DiffText)
	}

	session.resolved[mcpclient.CapabilityDiff] = "get_diff"
	session.failing = map[string]error{"get_diff": errors.New("network down")}
	bundle = NewAggregator(session, discardLog()).FetchBundle(context.Background(), "acme", "widgets", 1)
	if !strings.HasPrefix(bundle.DiffText, "Error fetching diff:") {
		t.Fatalf("expected failure explanation, got %q", bundle.DiffText)
	}
}

func TestFetchBundleFileContentsCappedAtFive(t *testing.T) {
	meta := `{"title":"t","files":[` +
		`{"filename":"f1"},{"filename":"f2"},{"filename":"f3"},` +
		`{"filename":"f4"},{"filename":"f5"},{"filename":"f6"},{"filename":"f7"}]}`
	session := &fakeSession{
		resolved: map[mcpclient.Capability]string{
			mcpclient.CapabilityPullRequest: "get_pull_request",
			mcpclient.CapabilityDiff:        "get_diff",
			mcpclient.CapabilityFileContent: "get_file_contents",
		},
		results: map[string]string{
			"get_pull_request":     meta,
			"get_diff":             "d",
			"get_file_contents:f1": "c1",
			"get_file_contents:f2": "c2",
			"get_file_contents:f3": "c3",
			"get_file_contents:f4": "c4",
			"get_file_contents:f5": "c5",
		},
	}

	bundle := NewAggregator(session, discardLog()).FetchBundle(context.Background(), "acme", "widgets", 1)
	if len(bundle.Files) != 5 {
		t.Fatalf("expected exactly 5 file contents, got %d", len(bundle.Files))
	}
	for i, f := range bundle.Files {
		if want := fmt.Sprintf("f%d", i+1); f.Path != want {
			t.Fatalf("expected first five files in order, got %q at %d", f.Path, i)
		}
	}
}

func TestFetchBundlePerFileFailureIsolated(t *testing.T) {
	meta := `{"files":[{"filename":"ok.go"},{"filename":"broken.go"},{"filename":"also_ok.go"}]}`
	session := &fakeSession{
		resolved: map[mcpclient.Capability]string{
			mcpclient.CapabilityPullRequest: "get_pull_request",
			mcpclient.CapabilityDiff:        "get_diff",
			mcpclient.CapabilityFileContent: "get_file_contents",
		},
		results: map[string]string{
			"get_pull_request":             meta,
			"get_diff":                     "d",
			"get_file_contents:ok.go":      "a",
			"get_file_contents:also_ok.go": "b",
		},
		failing: map[string]error{"get_file_contents:broken.go": errors.New("unreachable")},
	}

	bundle := NewAggregator(session, discardLog()).FetchBundle(context.Background(), "acme", "widgets", 1)
	if len(bundle.Files) != 3 {
		t.Fatalf("expected all three files recorded, got %d", len(bundle.Files))
	}
	if bundle.Files[1].Err == nil || !strings.HasPrefix(bundle.Files[1].Content, "Error fetching content:") {
		t.Fatalf("expected error marker for broken.go, got %+v", bundle.Files[1])
	}
	if bundle.Files[2].Content != "b" {
		t.Fatalf("file after the failure must still be fetched, got %+v", bundle.Files[2])
	}
}

func TestFetchBundleNoFilesListSkipsContentPhase(t *testing.T) {
	session := &fakeSession{
		resolved: map[mcpclient.Capability]string{
			mcpclient.CapabilityPullRequest: "get_pull_request",
			mcpclient.CapabilityDiff:        "get_diff",
			mcpclient.CapabilityFileContent: "get_file_contents",
		},
		results: map[string]string{
			"get_pull_request": `{"title":"no files key"}`,
			"get_diff":         "d",
		},
	}
	bundle := NewAggregator(session, discardLog()).FetchBundle(context.Background(), "acme", "widgets", 1)
	if bundle.Files != nil {
		t.Fatalf("expected no file contents, got %v", bundle.Files)
	}
	for _, call := range session.calls {
		if strings.HasPrefix(call, "get_file_contents") {
			t.Fatalf("content tool must not be invoked without a files list")
		}
	}
}
