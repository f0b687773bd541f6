package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/roivaz/pr-review-agent/internal/logging"
	"github.com/roivaz/pr-review-agent/internal/mcpclient"
)

// maxFileContents caps how many changed files are fetched per PR.
const maxFileContents = 5

// ToolSession is the slice of the provider session the aggregator needs.
type ToolSession interface {
	Resolve(ctx context.Context, capability mcpclient.Capability) (string, error)
	Call(ctx context.Context, name string, args map[string]any) (string, error)
	CallCapability(ctx context.Context, capability mcpclient.Capability, args map[string]any) (string, error)
}

// Aggregator fetches PR metadata, diff, and changed-file contents through one
// provider session. Every phase is isolated: a failed fetch is recorded in the
// bundle as data and never aborts the run or the remaining phases.
type Aggregator struct {
	session ToolSession
	log     logging.Logger
}

func NewAggregator(session ToolSession, log logging.Logger) *Aggregator {
	return &Aggregator{session: session, log: log.WithName("aggregator")}
}

// FetchBundle runs the three fetch phases sequentially and always returns a
// usable Bundle.
func (a *Aggregator) FetchBundle(ctx context.Context, owner, repo string, number int) Bundle {
	bundle := Bundle{}
	bundle.Metadata = a.fetchMetadata(ctx, owner, repo, number)
	bundle.DiffText = a.fetchDiff(ctx, owner, repo, number)
	bundle.Files = a.fetchFileContents(ctx, owner, repo, bundle.Metadata)
	return bundle
}

func (a *Aggregator) fetchMetadata(ctx context.Context, owner, repo string, number int) Metadata {
	raw, err := a.session.CallCapability(ctx, mcpclient.CapabilityPullRequest, map[string]any{
		"owner":       owner,
		"repo":        repo,
		"pull_number": number,
	})
	if err != nil {
		a.log.Error(err, "metadata fetch failed", "pr", number)
		return Metadata{Raw: fallbackMetadata(owner, repo, number), Err: err}
	}
	return Metadata{Raw: raw}
}

func (a *Aggregator) fetchDiff(ctx context.Context, owner, repo string, number int) string {
	raw, err := a.session.CallCapability(ctx, mcpclient.CapabilityDiff, map[string]any{
		"owner":       owner,
		"repo":        repo,
		"pull_number": number,
	})
	if err != nil {
		a.log.Error(err, "diff fetch failed", "pr", number)
		if errors.Is(err, mcpclient.ErrNoTool) {
			return "Unable to fetch PR diff"
		}
		return fmt.Sprintf("Error fetching diff: %v", err)
	}
	return raw
}

func (a *Aggregator) fetchFileContents(ctx context.Context, owner, repo string, meta Metadata) []FileContent {
	paths := meta.ChangedFiles()
	if len(paths) == 0 {
		return nil
	}
	if len(paths) > maxFileContents {
		paths = paths[:maxFileContents]
	}

	tool, err := a.session.Resolve(ctx, mcpclient.CapabilityFileContent)
	if err != nil {
		a.log.Error(err, "no file content tool available")
		return nil
	}

	contents := make([]FileContent, 0, len(paths))
	for _, path := range paths {
		raw, err := a.session.Call(ctx, tool, map[string]any{
			"owner": owner,
			"repo":  repo,
			"path":  path,
			"ref":   "HEAD",
		})
		if err != nil {
			// one unreachable file must not prevent fetching the rest
			a.log.Error(err, "file content fetch failed", "path", path)
			contents = append(contents, FileContent{
				Path:    path,
				Content: fmt.Sprintf("Error fetching content: %v", err),
				Err:     err,
			})
			continue
		}
		contents = append(contents, FileContent{Path: path, Content: raw})
	}
	return contents
}

// PostComment publishes body as an issue comment on the PR.
func (a *Aggregator) PostComment(ctx context.Context, owner, repo string, number int, body string) error {
	_, err := a.session.CallCapability(ctx, mcpclient.CapabilityComment, map[string]any{
		"owner":        owner,
		"repo":         repo,
		"issue_number": number,
		"body":         body,
	})
	return err
}
