package risk

import (
	"strings"

	"github.com/mossrow/tokenguard/internal/metrics"
	"github.com/mossrow/tokenguard/internal/validation"
)

// QuickCheck is the synchronous pre-filter for rendering paths where full
// validation latency is unacceptable. Pure list and pattern lookups, no
// I/O, never blocks.
func (e *Engine) QuickCheck(address string, chainID ChainID, meta *TokenMetadata) QuickResult {
	result := e.quickCheck(address, chainID, meta)
	metrics.QuickChecksTotal.WithLabelValues(result.Level.String()).Inc()
	return result
}

func (e *Engine) quickCheck(address string, chainID ChainID, meta *TokenMetadata) QuickResult {
	if !validation.IsValidEthAddress(address) {
		return QuickResult{Level: LevelUnknown, Trusted: false, Reason: "not a valid contract address"}
	}
	addr := strings.ToLower(address)

	if e.lists.IsBlacklisted(int64(chainID), addr) {
		return QuickResult{Level: LevelCritical, Trusted: false, Reason: "address is blacklisted"}
	}
	if e.lists.IsVerified(int64(chainID), addr) {
		return QuickResult{Level: LevelVerified, Trusted: true, Reason: "verified token contract"}
	}

	if meta != nil {
		if meta.Name != "" && e.patterns.MatchScamName(meta.Name) {
			return QuickResult{Level: LevelHigh, Trusted: false, Reason: "name matches spam patterns"}
		}
		if meta.Symbol != "" && e.patterns.MatchScamSymbol(meta.Symbol) {
			return QuickResult{Level: LevelHigh, Trusted: false, Reason: "symbol matches spam patterns"}
		}
	}

	return QuickResult{Level: LevelMedium, Trusted: false, Reason: "token is unclassified"}
}
