package risk

// Scoring starts from a baseline of 100 and subtracts a fixed penalty per
// issue. Keeping the weights in one table keeps the arithmetic auditable:
// adding a new issue kind means adding a row, not another branch.

const (
	baselineScore = 100

	// Band boundaries. Pinned by the engine test scenarios: a verified-list
	// token with clean metadata must land above 80, and a token tripping
	// spam name + spam symbol + suspicious decimals must land at or below 60.
	bandLow    = 90 // score >= bandLow    -> LevelLow (LevelVerified when list-verified)
	bandMedium = 70 // score >= bandMedium -> LevelMedium
	bandHigh   = 40 // score >= bandHigh   -> LevelHigh, below -> LevelCritical

	// Bounded adjustments outside the per-issue table.
	verifiedListBoost     = 20
	externalVerifiedBoost = 10
	strictModePenalty     = 15
)

var issuePenalty = map[IssueKind]int{
	IssueSpamName:           25,
	IssueSpamSymbol:         20,
	IssueImpersonation:      30,
	IssueSuspiciousDecimals: 15,
	IssuePromotionalContent: 10,
	IssueAirdropSpam:        30,
	IssueRiskyList:          20,
	IssueExternalFlag:       25,
	IssueBlacklisted:        100,
	IssueHoneypot:           100,
}

// Contract flags share one issue kind but carry severity-scaled penalties.
var contractFlagPenalty = map[Severity]int{
	SeverityLow:    5,
	SeverityMedium: 10,
	SeverityHigh:   20,
}

func penaltyFor(issue Issue) int {
	if issue.Kind == IssueContractFlag {
		return contractFlagPenalty[issue.Severity]
	}
	return issuePenalty[issue.Kind]
}

var issueSeverity = map[IssueKind]Severity{
	IssueSpamName:           SeverityHigh,
	IssueSpamSymbol:         SeverityHigh,
	IssueImpersonation:      SeverityHigh,
	IssueSuspiciousDecimals: SeverityMedium,
	IssuePromotionalContent: SeverityLow,
	IssueAirdropSpam:        SeverityHigh,
	IssueRiskyList:          SeverityMedium,
	IssueExternalFlag:       SeverityHigh,
	IssueBlacklisted:        SeverityCritical,
	IssueHoneypot:           SeverityCritical,
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// levelForScore maps a clamped score to its band. The severity override
// (any critical issue forces LevelCritical) is applied separately during
// finalization so it stays independently testable.
func levelForScore(score int) Level {
	switch {
	case score >= bandLow:
		return LevelLow
	case score >= bandMedium:
		return LevelMedium
	case score >= bandHigh:
		return LevelHigh
	default:
		return LevelCritical
	}
}
