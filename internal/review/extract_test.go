package review

import (
	"reflect"
	"testing"
)

func TestExtractScoreFromLine(t *testing.T) {
	analysis := Extract("Some preamble\nQuality Score: 8/10\n")
	if analysis.QualityScore != 8 {
		t.Fatalf("expected score 8, got %d", analysis.QualityScore)
	}
}

func TestExtractScoreDefaultWhenNoDigits(t *testing.T) {
	analysis := Extract("Quality Score: excellent\n")
	if analysis.QualityScore != defaultQualityScore {
		t.Fatalf("expected default score %d, got %d", defaultQualityScore, analysis.QualityScore)
	}
}

func TestExtractScoreNotClamped(t *testing.T) {
	analysis := Extract("Score: 100\n")
	if analysis.QualityScore != 100 {
		t.Fatalf("digit runs are stored unclamped, got %d", analysis.QualityScore)
	}
}

func TestExtractIssuesBullets(t *testing.T) {
	analysis := Extract("## Issues\n- bug A\n- bug B\n")
	want := []string{"bug A", "bug B"}
	if !reflect.DeepEqual(analysis.PotentialIssues, want) {
		t.Fatalf("unexpected issues %v", analysis.PotentialIssues)
	}
}

func TestExtractSectionsAndSummary(t *testing.T) {
	raw := `## Summary
The change adds retries.
## Best Practices
- clear naming
## Security
- token is logged
## Performance
* avoids extra allocation
## Recommendations
- add a test
`
	analysis := Extract(raw)
	if analysis.Summary != "The change adds retries." {
		t.Fatalf("unexpected summary %q", analysis.Summary)
	}
	if !reflect.DeepEqual(analysis.BestPractices, []string{"clear naming"}) {
		t.Fatalf("unexpected best practices %v", analysis.BestPractices)
	}
	if !reflect.DeepEqual(analysis.SecurityConcerns, []string{"token is logged"}) {
		t.Fatalf("unexpected security concerns %v", analysis.SecurityConcerns)
	}
	if !reflect.DeepEqual(analysis.PerformanceInsights, []string{"avoids extra allocation"}) {
		t.Fatalf("unexpected performance insights %v", analysis.PerformanceInsights)
	}
	if !reflect.DeepEqual(analysis.Recommendations, []string{"add a test"}) {
		t.Fatalf("unexpected recommendations %v", analysis.Recommendations)
	}
}

func TestExtractSummaryLastLineWins(t *testing.T) {
	analysis := Extract("Summary\nfirst line\nsecond line\n")
	if analysis.Summary != "second line" {
		t.Fatalf("expected last plain line to win, got %q", analysis.Summary)
	}
}

func TestExtractBulletsWithoutSectionDropped(t *testing.T) {
	analysis := Extract("- stray bullet\n* another one\n")
	if len(analysis.BestPractices)+len(analysis.PotentialIssues)+len(analysis.SecurityConcerns)+
		len(analysis.PerformanceInsights)+len(analysis.Recommendations) != 0 {
		t.Fatalf("bullets before any section must be dropped")
	}
}

func TestExtractEmptyInput(t *testing.T) {
	analysis := Extract("")
	if analysis.Summary != "Analysis completed" {
		t.Fatalf("unexpected summary %q", analysis.Summary)
	}
	if analysis.QualityScore != defaultQualityScore {
		t.Fatalf("unexpected score %d", analysis.QualityScore)
	}
}
