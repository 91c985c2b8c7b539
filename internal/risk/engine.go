package risk

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/mossrow/tokenguard/internal/idgen"
	"github.com/mossrow/tokenguard/internal/lists"
	"github.com/mossrow/tokenguard/internal/metrics"
	"github.com/mossrow/tokenguard/internal/patterns"
	"github.com/mossrow/tokenguard/internal/traces"
	"github.com/mossrow/tokenguard/internal/validation"
)

// maxPlausibleDecimals: ERC-20 convention tops out at 18; 24 leaves
// headroom for exotic but legitimate tokens.
const maxPlausibleDecimals = 24

// airdropShareNum/Den: a holder sitting on >=90% of total supply is the
// classic unsolicited-airdrop distribution.
const (
	airdropShareNum = 9
	airdropShareDen = 10
)

// Engine evaluates tokens against the pattern library, the address lists,
// and the optional contract/registry collaborators. It holds no per-token
// mutable state; concurrent validations are independent.
type Engine struct {
	patterns  *patterns.Library
	lists     *lists.Registry
	contracts ContractAnalyzer
	registry  RegistrySource
	store     Store
	cache     *resultCache
	logger    *slog.Logger
	observer  func(*Validation)
}

// Option configures an Engine.
type Option func(*Engine)

// WithContractAnalyzer wires the contract-analysis collaborator.
func WithContractAnalyzer(a ContractAnalyzer) Option {
	return func(e *Engine) { e.contracts = a }
}

// WithRegistrySource wires the external registry collaborator.
func WithRegistrySource(r RegistrySource) Option {
	return func(e *Engine) { e.registry = r }
}

// WithStore wires the audit store. Recording is asynchronous best-effort.
func WithStore(s Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithObserver registers a callback invoked with every completed
// validation, after scoring but before the result is returned. The
// callback must not block; cache hits do not re-notify.
func WithObserver(fn func(*Validation)) Option {
	return func(e *Engine) { e.observer = fn }
}

// WithCacheTTL overrides the default result cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(e *Engine) { e.cache = newResultCache(ttl) }
}

// NewEngine creates a validation engine. Pattern library and lists default
// to the built-in sets when nil, so tests can substitute fixtures per call
// site without touching global state.
func NewEngine(lib *patterns.Library, reg *lists.Registry, opts ...Option) *Engine {
	e := &Engine{
		patterns: lib,
		lists:    reg,
		logger:   slog.Default(),
		cache:    newResultCache(defaultCacheTTL),
	}
	if e.patterns == nil {
		e.patterns = patterns.Default()
	}
	if e.lists == nil {
		e.lists = lists.Default()
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate runs the full staged assessment. A malformed address is the only
// input that errors; every stage after input validation degrades to
// signal-absent on failure or timeout, so a syntactically valid address
// always yields a well-formed Validation.
func (e *Engine) Validate(ctx context.Context, address string, chainID ChainID, meta *TokenMetadata, cfg Config) (*Validation, error) {
	if !validation.IsValidEthAddress(address) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	addr := strings.ToLower(address)

	ctx, span := traces.StartSpan(ctx, "risk.validate",
		traces.TokenAddr(addr), traces.Chain(int64(chainID)))
	defer span.End()

	start := time.Now()

	key := cacheKey(addr, chainID, cfg)
	if cfg.Caching && e.cache != nil {
		if cached, ok := e.cache.get(key); ok {
			metrics.CacheHits.Inc()
			return cached, nil
		}
		metrics.CacheMisses.Inc()
		// Collapse concurrent validations of the same key; the loser of the
		// race reads the winner's cached result.
		unlock := e.cache.lockKey(key)
		defer unlock()
		if cached, ok := e.cache.get(key); ok {
			metrics.CacheHits.Inc()
			return cached, nil
		}
	}

	v := &Validation{
		ID:          idgen.WithPrefix("val_"),
		Address:     addr,
		ChainID:     chainID,
		ValidatedAt: time.Now(),
		Contract:    ContractSecurity{DeployerRisk: "unknown"},
		Metadata:    MetadataSecurity{MetadataQuality: 1.0},
	}
	score := baselineScore

	// Stage: list membership. Absolute signals; issues recorded in later
	// stages are still collected for display.
	blacklisted := e.lists.IsBlacklisted(int64(chainID), addr)
	verifiedListed := e.lists.IsVerified(int64(chainID), addr)
	if blacklisted {
		score -= e.addIssue(v, IssueBlacklisted, "address is on the chain blacklist")
	} else if e.lists.IsRisky(int64(chainID), addr) {
		score -= e.addIssue(v, IssueRiskyList, "address is on the chain risky list")
	}

	// Stage: metadata analysis.
	if cfg.MetadataValidation && meta != nil {
		score -= e.analyzeMetadata(v, meta)
	}

	// Stage: distribution heuristic. Needs both balance and total supply.
	if meta != nil && holderShareAtLeast(meta.Balance, meta.TotalSupply, airdropShareNum, airdropShareDen) {
		score -= e.addIssue(v, IssueAirdropSpam, "holder controls 90% or more of total supply")
	}

	contractVerified := false
	if cfg.ContractAnalysis && e.contracts != nil {
		if report := e.contractSignal(ctx, cfg.Timeout, addr, chainID); report != nil {
			contractVerified = report.Verified
			score -= e.applyContractReport(v, report)
		}
	}

	registryVerified := false
	if cfg.ExternalValidation && e.registry != nil {
		if sig := e.registrySignal(ctx, cfg.Timeout, addr, chainID); sig != nil {
			boost, penalty := e.applyRegistrySignal(v, sig)
			registryVerified = sig.Verified
			score += boost
			score -= penalty
		}
	}

	// Strict mode: with no positive verification signal at all, the
	// achievable ceiling drops.
	if cfg.Strict && !verifiedListed && !contractVerified && !registryVerified {
		score -= strictModePenalty
	}
	if verifiedListed {
		score += verifiedListBoost
	}

	e.finalize(v, score, verifiedListed)

	metrics.ValidationsTotal.WithLabelValues(v.Level.String()).Inc()
	metrics.ValidationDuration.Observe(time.Since(start).Seconds())
	traces.SetLevel(span, v.Level.String())

	if e.observer != nil {
		e.observer(v)
	}

	if e.store != nil {
		// Best-effort audit trail, off the request path.
		stored := *v
		go func() {
			if err := e.store.Record(context.Background(), &stored); err != nil {
				e.logger.Warn("failed to record validation", "address", stored.Address, "error", err)
			}
		}()
	}

	if cfg.Caching && e.cache != nil {
		e.cache.put(key, v)
	}
	return v, nil
}

// addIssue appends an issue with its table severity and returns the
// penalty to subtract.
func (e *Engine) addIssue(v *Validation, kind IssueKind, message string) int {
	issue := Issue{Kind: kind, Severity: issueSeverity[kind], Message: message}
	v.Issues = append(v.Issues, issue)
	return penaltyFor(issue)
}

// addContractFlag appends a contract_flag issue at an explicit severity.
func (e *Engine) addContractFlag(v *Validation, severity Severity, message string) int {
	issue := Issue{Kind: IssueContractFlag, Severity: severity, Message: message}
	v.Issues = append(v.Issues, issue)
	return penaltyFor(issue)
}

func (e *Engine) analyzeMetadata(v *Validation, meta *TokenMetadata) int {
	penalty := 0
	flags := 0

	if meta.Name != "" && e.patterns.MatchScamName(meta.Name) {
		v.Metadata.HasSpamName = true
		flags++
		penalty += e.addIssue(v, IssueSpamName, fmt.Sprintf("name %q matches spam patterns", meta.Name))
	}
	if meta.Symbol != "" && e.patterns.MatchScamSymbol(meta.Symbol) {
		v.Metadata.HasSpamSymbol = true
		flags++
		penalty += e.addIssue(v, IssueSpamSymbol, fmt.Sprintf("symbol %q matches spam patterns", meta.Symbol))
	}
	if brand := e.patterns.Impersonation(meta.Name); brand != "" {
		v.Metadata.IsImpersonating = true
		flags++
		penalty += e.addIssue(v, IssueImpersonation, fmt.Sprintf("name imitates %q", brand))
	}
	if meta.Decimals == 0 || meta.Decimals > maxPlausibleDecimals {
		v.Metadata.HasSuspiciousDecimals = true
		flags++
		penalty += e.addIssue(v, IssueSuspiciousDecimals, fmt.Sprintf("implausible decimals value %d", meta.Decimals))
	}
	// A scam-name hit already covers promotional phrasing; only the weaker
	// signal on its own adds the promotional issue.
	if !v.Metadata.HasSpamName && meta.Name != "" && e.patterns.HasPromotionalContent(meta.Name) {
		v.Metadata.HasPromotionalContent = true
		flags++
		penalty += e.addIssue(v, IssuePromotionalContent, "name contains promotional phrasing")
	}

	v.Metadata.MetadataQuality = 1.0 - 0.2*float64(flags)
	if v.Metadata.MetadataQuality < 0 {
		v.Metadata.MetadataQuality = 0
	}
	return penalty
}

// holderShareAtLeast reports whether balance/supply >= num/den, using
// exact integer math so extreme supplies cannot overflow or lose precision.
func holderShareAtLeast(balance, supply *big.Int, num, den int64) bool {
	if balance == nil || supply == nil || supply.Sign() <= 0 || balance.Sign() < 0 {
		return false
	}
	lhs := new(big.Int).Mul(balance, big.NewInt(den))
	rhs := new(big.Int).Mul(supply, big.NewInt(num))
	return lhs.Cmp(rhs) >= 0
}

func (e *Engine) applyContractReport(v *Validation, r *ContractReport) int {
	v.Contract = ContractSecurity{
		Analyzed:                true,
		IsVerified:              r.Verified,
		IsProxy:                 r.Proxy,
		HasMintFunction:         r.MintFunction,
		HasTransferRestrictions: r.TransferRestrictions,
		IsHoneypot:              r.Honeypot,
		DeployerRisk:            r.DeployerRisk,
	}
	if v.Contract.DeployerRisk == "" {
		v.Contract.DeployerRisk = "unknown"
	}

	penalty := 0
	if r.Honeypot {
		penalty += e.addIssue(v, IssueHoneypot, "contract blocks or taxes selling")
	}
	if r.TransferRestrictions {
		penalty += e.addContractFlag(v, SeverityHigh, "contract restricts transfers")
	}
	if r.MintFunction {
		penalty += e.addContractFlag(v, SeverityMedium, "contract exposes a mint function")
	}
	if r.Proxy {
		penalty += e.addContractFlag(v, SeverityLow, "contract is an upgradeable proxy")
	}
	switch r.DeployerRisk {
	case "high":
		penalty += e.addContractFlag(v, SeverityHigh, "deployer linked to flagged contracts")
	case "medium":
		penalty += e.addContractFlag(v, SeverityMedium, "deployer has limited history")
	}
	return penalty
}

func (e *Engine) applyRegistrySignal(v *Validation, sig *RegistrySignal) (boost, penalty int) {
	if sig.FlaggedScam {
		penalty += e.addIssue(v, IssueExternalFlag, "flagged as scam by external registry")
		return 0, penalty
	}
	if sig.Verified {
		boost += externalVerifiedBoost
	} else if sig.Listed && sig.TrustScore < 0.3 {
		penalty += e.addContractFlag(v, SeverityMedium, "low trust score in external registry")
	}
	return boost, penalty
}

// finalize clamps the score and derives the level. The severity override
// is deliberately a separate post-processing step: any critical issue
// forces LevelCritical no matter what the number says, and a verified-list
// entry with a critical issue is not silently trusted.
func (e *Engine) finalize(v *Validation, score int, verifiedListed bool) {
	v.Score = clampScore(score)

	switch {
	case v.HasCriticalIssue():
		v.Level = LevelCritical
		v.Verified = false
	case verifiedListed:
		v.Level = LevelVerified
		v.Verified = true
	default:
		v.Level = levelForScore(v.Score)
	}
}

// contractSignal races the analyzer against the stage deadline. A losing
// call is abandoned: the buffered channel lets the goroutine finish and be
// collected without anyone waiting on it.
func (e *Engine) contractSignal(ctx context.Context, timeout time.Duration, addr string, chainID ChainID) *ContractReport {
	ctx, cancel := stageContext(ctx, timeout)
	defer cancel()

	ch := make(chan *ContractReport, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				e.logger.Error("contract analyzer panicked", "address", addr, "panic", r)
				ch <- nil
			}
		}()
		report, err := e.contracts.Analyze(ctx, addr, chainID)
		if err != nil {
			e.logger.Debug("contract analysis unavailable", "address", addr, "error", err)
			ch <- nil
			return
		}
		ch <- report
	}()

	select {
	case report := <-ch:
		if report == nil {
			metrics.StageSignalMissing.WithLabelValues("contract").Inc()
		}
		return report
	case <-ctx.Done():
		metrics.StageSignalMissing.WithLabelValues("contract").Inc()
		return nil
	}
}

func (e *Engine) registrySignal(ctx context.Context, timeout time.Duration, addr string, chainID ChainID) *RegistrySignal {
	ctx, cancel := stageContext(ctx, timeout)
	defer cancel()

	ch := make(chan *RegistrySignal, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				e.logger.Error("registry source panicked", "address", addr, "panic", r)
				ch <- nil
			}
		}()
		sig, err := e.registry.Lookup(ctx, addr, chainID)
		if err != nil {
			e.logger.Debug("registry lookup unavailable", "address", addr, "error", err)
			ch <- nil
			return
		}
		ch <- sig
	}()

	select {
	case sig := <-ch:
		if sig == nil {
			metrics.StageSignalMissing.WithLabelValues("registry").Inc()
		}
		return sig
	case <-ctx.Done():
		metrics.StageSignalMissing.WithLabelValues("registry").Inc()
		return nil
	}
}

func stageContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	return context.WithTimeout(ctx, timeout)
}
