// Package patterns holds the static rule sets used to flag spam and
// impersonation in token metadata.
//
// Three rule families are kept separate because they feed different issue
// kinds: scam-name phrases (promotional or urgency language in a display
// name), scam symbols (tickers that are purely numeric, currency-prefixed,
// or an imperative word), and impersonation pairs (a canonical brand name
// mapped to its common misspellings). A Library is built once and treated
// as read-only afterwards.
package patterns

import (
	"regexp"
	"strings"
)

// ImpersonationPair maps a canonical brand token to the misspelled or
// homoglyph variants scammers use to imitate it.
type ImpersonationPair struct {
	Original string
	Variants []string
}

// Library is an immutable set of compiled matchers.
type Library struct {
	scamNames     []*regexp.Regexp
	scamSymbols   []*regexp.Regexp
	promotional   []*regexp.Regexp
	impersonation []ImpersonationPair
}

// Rules is the source form of a Library, used to build custom rule sets
// in tests or to extend the defaults.
type Rules struct {
	ScamNames     []string
	ScamSymbols   []string
	Promotional   []string
	Impersonation []ImpersonationPair
}

// Compile builds a Library from raw rules. Invalid expressions are
// reported rather than silently dropped.
func Compile(r Rules) (*Library, error) {
	lib := &Library{impersonation: r.Impersonation}

	var err error
	if lib.scamNames, err = compileAll(r.ScamNames); err != nil {
		return nil, err
	}
	if lib.scamSymbols, err = compileAll(r.ScamSymbols); err != nil {
		return nil, err
	}
	if lib.promotional, err = compileAll(r.Promotional); err != nil {
		return nil, err
	}
	return lib, nil
}

func compileAll(exprs []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

// MatchScamName reports whether a token display name matches any
// scam-name pattern.
func (l *Library) MatchScamName(name string) bool {
	return matchAny(l.scamNames, name)
}

// MatchScamSymbol reports whether a token symbol matches any scam-symbol
// pattern.
func (l *Library) MatchScamSymbol(symbol string) bool {
	return matchAny(l.scamSymbols, symbol)
}

// HasPromotionalContent reports whether a name contains generic
// promotional phrasing (call-to-action text, embedded URLs).
func (l *Library) HasPromotionalContent(name string) bool {
	return matchAny(l.promotional, name)
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// Impersonation returns the brand a name is impersonating, or "" when it
// is not. A name impersonates a brand when it contains one of the brand's
// misspelled variants but not the canonical spelling itself. The second
// condition is what keeps legitimate names that honestly contain a brand
// word ("Ethereum Classic", "Chainlink Oracle") from being flagged.
func (l *Library) Impersonation(name string) string {
	lower := strings.ToLower(name)
	for _, pair := range l.impersonation {
		if strings.Contains(lower, pair.Original) {
			continue
		}
		for _, variant := range pair.Variants {
			if strings.Contains(lower, variant) {
				return pair.Original
			}
		}
	}
	return ""
}
