// Package commitmsg drafts commit messages from the staged changes of a local
// repository.
package commitmsg

import (
	"context"
	"fmt"
	"strings"

	"github.com/roivaz/pr-review-agent/internal/diffsum"
	"github.com/roivaz/pr-review-agent/internal/gitrepo"
	"github.com/roivaz/pr-review-agent/internal/llm"
	"github.com/roivaz/pr-review-agent/internal/logging"
)

const commitTemperature = 0.2

const commitPromptTemplate = `You are an expert at writing concise and descriptive git commit messages.
Given the following code changes, generate a commit message that summarizes the intent:

{{.DiffSummary}}`

type Generator struct {
	llm *llm.Client
	log logging.Logger
}

func NewGenerator(client *llm.Client, log logging.Logger) *Generator {
	return &Generator{llm: client, log: log.WithName("commitmsg")}
}

// Generate summarizes the staged diff of the repository containing path and
// asks the LLM for a commit message.
func (g *Generator) Generate(ctx context.Context, path string) (string, error) {
	root, err := gitrepo.New(path).Root(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve repository root: %w", err)
	}
	repo := gitrepo.New(root)

	diff, err := repo.StagedDiff(ctx)
	if err != nil {
		return "", fmt.Errorf("read staged diff: %w", err)
	}
	if strings.TrimSpace(diff) == "" {
		return "", fmt.Errorf("no staged changes in %s", root)
	}

	files, err := repo.StagedFiles(ctx)
	if err != nil {
		return "", fmt.Errorf("list staged files: %w", err)
	}

	summary := diffsum.Summarize(diff)
	g.log.Info("summarized staged changes", "repo", root, "staged_files", len(files), "changed_files", summary.Len())

	prompt := strings.ReplaceAll(commitPromptTemplate, "{{.DiffSummary}}", summary.Format())
	message, err := g.llm.Complete(ctx, "", prompt, commitTemperature)
	if err != nil {
		return "", fmt.Errorf("generate commit message: %w", err)
	}
	return strings.TrimSpace(message), nil
}
