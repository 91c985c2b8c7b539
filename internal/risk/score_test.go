package risk

import "testing"

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-500, 0},
		{-1, 0},
		{0, 0},
		{50, 50},
		{100, 100},
		{101, 100},
		{500, 100},
	}
	for _, tt := range tests {
		if got := clampScore(tt.in); got != tt.want {
			t.Errorf("clampScore(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score int
		want  Level
	}{
		{100, LevelLow},
		{bandLow, LevelLow},
		{bandLow - 1, LevelMedium},
		{bandMedium, LevelMedium},
		{bandMedium - 1, LevelHigh},
		{bandHigh, LevelHigh},
		{bandHigh - 1, LevelCritical},
		{0, LevelCritical},
	}
	for _, tt := range tests {
		if got := levelForScore(tt.score); got != tt.want {
			t.Errorf("levelForScore(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestPenaltyTableComplete(t *testing.T) {
	kinds := []IssueKind{
		IssueSpamName, IssueSpamSymbol, IssueImpersonation,
		IssueSuspiciousDecimals, IssuePromotionalContent, IssueAirdropSpam,
		IssueHoneypot, IssueBlacklisted, IssueRiskyList, IssueExternalFlag,
	}
	for _, kind := range kinds {
		if _, ok := issuePenalty[kind]; !ok {
			t.Errorf("No penalty defined for issue kind %s", kind)
		}
		if _, ok := issueSeverity[kind]; !ok {
			t.Errorf("No severity defined for issue kind %s", kind)
		}
	}

	// Absolute signals zero out the whole baseline on their own.
	if issuePenalty[IssueBlacklisted] < baselineScore {
		t.Error("A blacklist hit should consume the entire baseline")
	}
	if issuePenalty[IssueHoneypot] < baselineScore {
		t.Error("A honeypot should consume the entire baseline")
	}
}

func TestPenaltyForContractFlag(t *testing.T) {
	low := penaltyFor(Issue{Kind: IssueContractFlag, Severity: SeverityLow})
	med := penaltyFor(Issue{Kind: IssueContractFlag, Severity: SeverityMedium})
	high := penaltyFor(Issue{Kind: IssueContractFlag, Severity: SeverityHigh})

	if !(low < med && med < high) {
		t.Errorf("Contract flag penalties should scale with severity: %d, %d, %d", low, med, high)
	}
}
