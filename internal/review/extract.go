package review

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type section string

const (
	sectionNone            section = ""
	sectionSummary         section = "summary"
	sectionBestPractices   section = "best_practices"
	sectionIssues          section = "issues"
	sectionSecurity        section = "security"
	sectionPerformance     section = "performance"
	sectionRecommendations section = "recommendations"
)

var digitRun = regexp.MustCompile(`\d+`)

// Extract parses a free-text analysis into structured form. It is a
// best-effort line-oriented scan: header-like lines switch the current
// section, bullet lines become items of that section, and a plain line under
// the summary section replaces the running summary. It never fails; any
// internal panic degrades to a placeholder analysis with score 5.
func Extract(raw string) (analysis Analysis) {
	defer func() {
		if r := recover(); r != nil {
			analysis = degradedAnalysis(fmt.Sprintf("%v", r))
		}
	}()

	analysis = Analysis{
		Summary:      "Analysis completed",
		QualityScore: defaultQualityScore,
	}

	current := sectionNone
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "summary"):
			current = sectionSummary
		case strings.Contains(lower, "best practices"), strings.Contains(lower, "good"):
			current = sectionBestPractices
		case strings.Contains(lower, "issues"), strings.Contains(lower, "problems"):
			current = sectionIssues
		case strings.Contains(lower, "security"):
			current = sectionSecurity
		case strings.Contains(lower, "performance"):
			current = sectionPerformance
		case strings.Contains(lower, "recommendations"):
			current = sectionRecommendations
		case strings.Contains(lower, "quality score"), strings.Contains(lower, "score"):
			// the first digit run wins; values outside 1-10 are kept as-is
			if digits := digitRun.FindString(line); digits != "" {
				if score, err := strconv.Atoi(digits); err == nil {
					analysis.QualityScore = score
				}
			}
		case strings.HasPrefix(line, "-"), strings.HasPrefix(line, "*"):
			item := strings.TrimSpace(line[1:])
			switch current {
			case sectionBestPractices:
				analysis.BestPractices = append(analysis.BestPractices, item)
			case sectionIssues:
				analysis.PotentialIssues = append(analysis.PotentialIssues, item)
			case sectionSecurity:
				analysis.SecurityConcerns = append(analysis.SecurityConcerns, item)
			case sectionPerformance:
				analysis.PerformanceInsights = append(analysis.PerformanceInsights, item)
			case sectionRecommendations:
				analysis.Recommendations = append(analysis.Recommendations, item)
			}
		case current == sectionSummary:
			// last plain line under the summary header wins
			analysis.Summary = line
		}
	}
	return analysis
}

func degradedAnalysis(cause string) Analysis {
	return Analysis{
		Summary:         "Error parsing analysis",
		PotentialIssues: []string{fmt.Sprintf("Parsing error: %s", cause)},
		QualityScore:    degradedQualityScore,
	}
}
