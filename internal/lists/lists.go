// Package lists holds the per-chain registries of verified, blacklisted,
// and risky token contract addresses.
//
// A Registry is built once from its canonical slice form and indexed
// internally as lowercase sets for O(1) membership tests. Membership is an
// absolute signal: a blacklisted address is CRITICAL no matter what else is
// known about it, and a verified address is trusted unless validation
// surfaces a critical issue of its own.
package lists

import "strings"

// Set is the canonical list form for one chain.
type Set struct {
	Verified    []string `json:"verified"`
	Blacklisted []string `json:"blacklisted"`
	Risky       []string `json:"risky"`
}

type chainIndex struct {
	verified    map[string]struct{}
	blacklisted map[string]struct{}
	risky       map[string]struct{}
	canonical   Set
}

// Registry is an immutable chain-scoped address registry.
type Registry struct {
	chains map[int64]*chainIndex
}

// New builds a Registry from per-chain sets. Addresses are normalized to
// lowercase at build time so lookups are case-insensitive.
func New(perChain map[int64]Set) *Registry {
	r := &Registry{chains: make(map[int64]*chainIndex, len(perChain))}
	for chainID, set := range perChain {
		r.chains[chainID] = &chainIndex{
			verified:    toSet(set.Verified),
			blacklisted: toSet(set.Blacklisted),
			risky:       toSet(set.Risky),
			canonical:   set,
		}
	}
	return r
}

func toSet(addrs []string) map[string]struct{} {
	m := make(map[string]struct{}, len(addrs))
	for _, a := range addrs {
		m[strings.ToLower(a)] = struct{}{}
	}
	return m
}

// IsVerified reports whether addr is on the chain's verified list.
func (r *Registry) IsVerified(chainID int64, addr string) bool {
	return r.member(chainID, addr, func(c *chainIndex) map[string]struct{} { return c.verified })
}

// IsBlacklisted reports whether addr is on the chain's blacklist.
func (r *Registry) IsBlacklisted(chainID int64, addr string) bool {
	return r.member(chainID, addr, func(c *chainIndex) map[string]struct{} { return c.blacklisted })
}

// IsRisky reports whether addr is on the chain's risky list.
func (r *Registry) IsRisky(chainID int64, addr string) bool {
	return r.member(chainID, addr, func(c *chainIndex) map[string]struct{} { return c.risky })
}

func (r *Registry) member(chainID int64, addr string, pick func(*chainIndex) map[string]struct{}) bool {
	c, ok := r.chains[chainID]
	if !ok {
		return false
	}
	_, ok = pick(c)[strings.ToLower(addr)]
	return ok
}

// HasChain reports whether the registry carries lists for the chain.
func (r *Registry) HasChain(chainID int64) bool {
	_, ok := r.chains[chainID]
	return ok
}

// Chains returns the chain IDs the registry carries lists for.
func (r *Registry) Chains() []int64 {
	out := make([]int64, 0, len(r.chains))
	for id := range r.chains {
		out = append(out, id)
	}
	return out
}

// Snapshot returns a copy of the canonical list form for a chain, for
// read-only API exposure. The second return is false for unknown chains.
func (r *Registry) Snapshot(chainID int64) (Set, bool) {
	c, ok := r.chains[chainID]
	if !ok {
		return Set{}, false
	}
	return Set{
		Verified:    append([]string(nil), c.canonical.Verified...),
		Blacklisted: append([]string(nil), c.canonical.Blacklisted...),
		Risky:       append([]string(nil), c.canonical.Risky...),
	}, true
}
