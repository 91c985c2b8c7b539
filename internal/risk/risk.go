// Package risk implements token trust assessment for wallet-facing flows.
//
// Two entry points share one risk model. QuickCheck is a synchronous
// list-and-pattern pre-filter cheap enough for list rendering. Validate is
// the full multi-stage assessment run before a user commits to an action:
// it combines metadata heuristics, list membership, holder-distribution
// analysis, and pluggable contract/registry signals into a bounded 0-100
// score and a discrete level. Stages degrade independently: a provider
// that errors or misses the deadline is recorded as signal-absent, and the
// caller always gets a verdict.
package risk

import (
	"context"
	"errors"
	"math/big"
	"time"
)

var ErrInvalidAddress = errors.New("risk: invalid token address")

// Level is an ordered risk classification. Higher values are more severe.
// LevelUnknown sits outside the severity scale and is used only when no
// signal applies.
type Level int

const (
	LevelVerified Level = iota
	LevelLow
	LevelMedium
	LevelHigh
	LevelCritical
	LevelUnknown
)

var levelNames = map[Level]string{
	LevelVerified: "verified",
	LevelLow:      "low",
	LevelMedium:   "medium",
	LevelHigh:     "high",
	LevelCritical: "critical",
	LevelUnknown:  "unknown",
}

// String returns the wire name of the level.
func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return "unknown"
}

// MarshalJSON encodes the level as its wire name.
func (l Level) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// UnmarshalJSON decodes a wire name into a level.
func (l *Level) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, ok := ParseLevel(s)
	if !ok {
		return errors.New("risk: unknown level " + s)
	}
	*l = parsed
	return nil
}

// ParseLevel maps a wire name back to a Level.
func ParseLevel(s string) (Level, bool) {
	for l, name := range levelNames {
		if name == s {
			return l, true
		}
	}
	return LevelUnknown, false
}

// MoreSevereThan reports whether l is strictly more severe than other on
// the ordered scale. LevelUnknown ranks alongside LevelMedium: an
// unclassified token is treated conservatively rather than waved through.
func (l Level) MoreSevereThan(other Level) bool {
	return l.rank() > other.rank()
}

func (l Level) rank() int {
	if l == LevelUnknown {
		return int(LevelMedium)
	}
	return int(l)
}

// ChainID identifies a supported network (1, 56, 137, 42161, ...).
type ChainID int64

// TokenMetadata is the optional on-chain metadata supplied by the caller.
// Absent fields narrow the check set, they never cause failure. Balance
// and TotalSupply are raw base-unit amounts.
type TokenMetadata struct {
	Name        string   `json:"name"`
	Symbol      string   `json:"symbol"`
	Decimals    int      `json:"decimals"`
	Balance     *big.Int `json:"balance,omitempty"`
	TotalSupply *big.Int `json:"totalSupply,omitempty"`
}

// Config controls which validation stages run. It is immutable per call.
type Config struct {
	ContractAnalysis   bool          `json:"enableContractAnalysis"`
	MetadataValidation bool          `json:"enableMetadataValidation"`
	ExternalValidation bool          `json:"enableExternalValidation"`
	Timeout            time.Duration `json:"validationTimeout"`
	Caching            bool          `json:"enableCaching"`
	Strict             bool          `json:"strictMode"`
}

// DefaultConfig favors metadata-only, non-strict, cached validation.
func DefaultConfig() Config {
	return Config{
		MetadataValidation: true,
		Timeout:            5 * time.Second,
		Caching:            true,
	}
}

// Severity grades a single issue.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// IssueKind tags what a validation issue is about. Scoring is data-driven:
// each kind maps to a fixed penalty in the score table.
type IssueKind string

const (
	IssueSpamName           IssueKind = "spam_name"
	IssueSpamSymbol         IssueKind = "spam_symbol"
	IssueImpersonation      IssueKind = "impersonation"
	IssueSuspiciousDecimals IssueKind = "suspicious_decimals"
	IssuePromotionalContent IssueKind = "promotional_content"
	IssueAirdropSpam        IssueKind = "airdrop_spam"
	IssueContractFlag       IssueKind = "contract_flag"
	IssueHoneypot           IssueKind = "honeypot"
	IssueBlacklisted        IssueKind = "blacklisted"
	IssueRiskyList          IssueKind = "risky_list"
	IssueExternalFlag       IssueKind = "external_flag"
)

// Issue is one finding from a validation run. The issue list on a result
// is append-only during validation and never mutated afterwards.
type Issue struct {
	Kind     IssueKind `json:"kind"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
}

// ContractSecurity summarizes the contract-analysis stage. Analyzed is
// false when the stage was disabled, timed out, or errored.
type ContractSecurity struct {
	Analyzed                bool   `json:"analyzed"`
	IsVerified              bool   `json:"isVerified"`
	IsProxy                 bool   `json:"isProxy"`
	HasMintFunction         bool   `json:"hasMintFunction"`
	HasTransferRestrictions bool   `json:"hasTransferRestrictions"`
	IsHoneypot              bool   `json:"isHoneypot"`
	DeployerRisk            string `json:"deployerRisk"`
}

// MetadataSecurity summarizes the metadata-analysis stage.
type MetadataSecurity struct {
	HasSpamName           bool    `json:"hasSpamName"`
	HasSpamSymbol         bool    `json:"hasSpamSymbol"`
	IsImpersonating       bool    `json:"isImpersonating"`
	HasSuspiciousDecimals bool    `json:"hasSuspiciousDecimals"`
	HasPromotionalContent bool    `json:"hasPromotionalContent"`
	MetadataQuality       float64 `json:"metadataQuality"`
}

// Validation is the full assessment result. It is a value object: once
// returned it is never mutated, and re-validating produces a new one.
type Validation struct {
	ID          string           `json:"id"`
	Address     string           `json:"address"`
	ChainID     ChainID          `json:"chainId"`
	Level       Level            `json:"riskLevel"`
	Score       int              `json:"securityScore"` // always within [0,100]
	Issues      []Issue          `json:"issues"`
	Verified    bool             `json:"isVerified"`
	ValidatedAt time.Time        `json:"validatedAt"`
	Contract    ContractSecurity `json:"contractSecurity"`
	Metadata    MetadataSecurity `json:"metadataSecurity"`
	Cached      bool             `json:"cached,omitempty"`
}

// HasCriticalIssue reports whether any issue carries critical severity.
// Critical issues override numeric-score banding during finalization.
func (v *Validation) HasCriticalIssue() bool {
	for _, is := range v.Issues {
		if is.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// QuickResult is the narrow projection returned by QuickCheck.
type QuickResult struct {
	Level   Level  `json:"riskLevel"`
	Trusted bool   `json:"trusted"`
	Reason  string `json:"reason"`
}

// ContractReport is what a contract-analysis provider returns.
type ContractReport struct {
	Verified             bool
	Proxy                bool
	MintFunction         bool
	TransferRestrictions bool
	Honeypot             bool
	DeployerRisk         string // "low", "medium", "high", or "" when unknown
}

// ContractAnalyzer inspects a deployed contract. Implementations are
// best-effort and must respect ctx; the engine races each call against the
// configured timeout and abandons losers.
type ContractAnalyzer interface {
	Analyze(ctx context.Context, address string, chainID ChainID) (*ContractReport, error)
}

// RegistrySignal is what an external token registry returns.
type RegistrySignal struct {
	Listed      bool
	Verified    bool
	FlaggedScam bool
	TrustScore  float64 // 0.0-1.0 when Listed
}

// RegistrySource looks a token up in an external security registry.
// Same best-effort contract as ContractAnalyzer.
type RegistrySource interface {
	Lookup(ctx context.Context, address string, chainID ChainID) (*RegistrySignal, error)
}

// Store persists validations for the audit trail and history API.
type Store interface {
	Record(ctx context.Context, v *Validation) error
	ListByToken(ctx context.Context, address string, chainID ChainID, limit int) ([]*Validation, error)
	RecentCritical(ctx context.Context, limit int) ([]*Validation, error)
}
