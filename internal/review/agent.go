package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/roivaz/pr-review-agent/internal/llm"
	"github.com/roivaz/pr-review-agent/internal/logging"
	"github.com/roivaz/pr-review-agent/internal/mcpclient"
)

// Prompt sections are truncated to keep the analysis request inside a token
// budget; trailing content is dropped silently.
const (
	maxDiffPromptChars  = 3000
	maxFilesPromptChars = 2000
)

const (
	analysisTemperature = 0.3
	commentTemperature  = 0.3
)

type Config struct {
	MCP         mcpclient.Config
	PostComment bool
	Logger      logging.Logger
}

// Agent sequences one PR review: fetch through a provider session, analyze
// with the LLM, extract structure, and draft a review comment.
type Agent struct {
	cfg Config
	llm *llm.Client
	log logging.Logger
}

func NewAgent(cfg Config, client *llm.Client) *Agent {
	return &Agent{cfg: cfg, llm: client, log: cfg.Logger.WithName("review")}
}

// AnalyzePR reviews one pull request. A single provider session covers all
// fetch phases and is released on every exit path. Fetch and completion
// failures degrade to placeholder values; only a session that cannot be
// opened at all is returned as an error.
func (a *Agent) AnalyzePR(ctx context.Context, owner, repo string, number int) (Analysis, error) {
	session, err := mcpclient.Open(ctx, a.cfg.MCP)
	if err != nil {
		return Analysis{}, fmt.Errorf("open provider session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			a.log.Error(err, "close provider session")
		}
	}()

	aggregator := NewAggregator(session, a.log)
	bundle := aggregator.FetchBundle(ctx, owner, repo, number)

	rawAnalysis := a.analyzeWithLLM(ctx, bundle)
	analysis := Extract(rawAnalysis)
	analysis.ReviewComment = a.generateComment(ctx, rawAnalysis)

	if a.cfg.PostComment {
		if err := aggregator.PostComment(ctx, owner, repo, number, analysis.ReviewComment); err != nil {
			a.log.Error(err, "post review comment failed", "pr", number)
		} else {
			a.log.Info("posted review comment", "pr", number)
		}
	}

	return analysis, nil
}

func (a *Agent) analyzeWithLLM(ctx context.Context, bundle Bundle) string {
	prompt := buildAnalysisPrompt(bundle)
	response, err := a.llm.Complete(ctx, systemPromptTemplate, prompt, analysisTemperature)
	if err != nil {
		a.log.Error(err, "llm analysis failed")
		return fmt.Sprintf("Analysis error: %v", err)
	}
	return response
}

func (a *Agent) generateComment(ctx context.Context, rawAnalysis string) string {
	prompt := strings.ReplaceAll(commentPromptTemplate, "{{.Analysis}}", rawAnalysis)
	comment, err := a.llm.Complete(ctx, "", prompt, commentTemperature)
	if err != nil {
		a.log.Error(err, "llm comment generation failed")
		return fmt.Sprintf("Error generating comment: %v", err)
	}
	return comment
}

func buildAnalysisPrompt(bundle Bundle) string {
	meta := bundle.Metadata
	prInfo := fmt.Sprintf("Title: %s\nDescription: %s\nAuthor: %s\nFiles Changed: %d\n",
		orNA(meta.Title()), orNA(meta.Body()), orNA(meta.Author()), len(bundle.Files))

	prompt := strings.ReplaceAll(analysisPromptTemplate, "{{.PRData}}", prInfo)
	prompt = strings.ReplaceAll(prompt, "{{.DiffContent}}", truncate(bundle.DiffText, maxDiffPromptChars))
	prompt = strings.ReplaceAll(prompt, "{{.FileContents}}", truncate(serializeFiles(bundle.Files), maxFilesPromptChars))
	return prompt
}

func serializeFiles(files []FileContent) string {
	var b strings.Builder
	for _, f := range files {
		fmt.Fprintf(&b, "### %s\n%s\n", f.Path, f.Content)
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
