package llm

import "testing"

func TestEstimateTokensEmpty(t *testing.T) {
	if got := EstimateTokens(""); got != 0 {
		t.Fatalf("expected 0 for empty text, got %d", got)
	}
}

func TestEstimateTokensUsesSeam(t *testing.T) {
	oldEstimate := estimateTokensFunc
	estimateTokensFunc = func(text string) int { return len(text) }
	defer func() { estimateTokensFunc = oldEstimate }()

	if got := EstimateTokens("abcd"); got != 4 {
		t.Fatalf("expected seam estimate 4, got %d", got)
	}
}

func TestCharFallbackNeverZero(t *testing.T) {
	if got := maxInt(1, len("ab")/approxCharsPerToken); got != 1 {
		t.Fatalf("short text must estimate at least one token, got %d", got)
	}
}
