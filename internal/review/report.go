package review

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RenderReport renders an Analysis as a Markdown report. Security and
// performance sections are omitted entirely when empty.
func RenderReport(analysis Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# PR Review Analysis Report\n\n")
	fmt.Fprintf(&b, "## Summary\n%s\n\n", analysis.Summary)
	fmt.Fprintf(&b, "## Code Quality Score: %d/10\n\n", analysis.QualityScore)

	fmt.Fprintf(&b, "## ✅ Best Practices\n")
	writeList(&b, analysis.BestPractices)

	fmt.Fprintf(&b, "\n## ⚠️ Potential Issues\n")
	writeList(&b, analysis.PotentialIssues)

	if len(analysis.SecurityConcerns) > 0 {
		fmt.Fprintf(&b, "\n## 🔒 Security Concerns\n")
		writeList(&b, analysis.SecurityConcerns)
	}
	if len(analysis.PerformanceInsights) > 0 {
		fmt.Fprintf(&b, "\n## ⚡ Performance Insights\n")
		writeList(&b, analysis.PerformanceInsights)
	}

	fmt.Fprintf(&b, "\n## 💡 Recommendations\n")
	writeList(&b, analysis.Recommendations)

	return b.String()
}

func writeList(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

// ReportPath returns the deterministic artifact name for one review.
func ReportPath(dir, owner, repo string, number int) string {
	return filepath.Join(dir, fmt.Sprintf("pr_review_%s_%s_%d.md", owner, repo, number))
}

// SaveReport writes the rendered report plus the generated comment to the
// review's artifact file and returns its path.
func SaveReport(dir, owner, repo string, number int, analysis Analysis) (string, error) {
	path := ReportPath(dir, owner, repo, number)
	content := RenderReport(analysis) + "\n\n## Generated Review Comment\n\n" + analysis.ReviewComment
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}
