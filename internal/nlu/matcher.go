package nlu

import (
	"strings"

	"github.com/seu-repo/mandi-assist/internal/domain"
)

// Tier identifies the matching strategy that produced a hit.
type Tier int

const (
	TierExact Tier = iota
	TierContainment
	TierTokenOverlap
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierContainment:
		return "containment"
	case TierTokenOverlap:
		return "token_overlap"
	default:
		return "unknown"
	}
}

// Match is a successful catalog hit.
type Match struct {
	Key    string
	Action domain.NavigationTarget
	Tier   Tier
}

// Matcher resolves a normalized utterance to a catalog entry. Tiers are
// tried in strict order, first success wins: exact equality, symmetric
// substring containment, then token overlap. Within a tier the catalog
// definition order breaks ties; there is no scoring beyond the tier level.
//
// The loose lower tiers are a deliberate recall-over-precision choice for
// a convenience feature; the tiering keeps a sloppy token hit from ever
// pre-empting an exact match elsewhere.
type Matcher struct {
	catalog *Catalog
}

// NewMatcher builds a Matcher over a catalog. Input to Match must already
// be normalized; the catalog stores variants lowercase.
func NewMatcher(catalog *Catalog) *Matcher {
	return &Matcher{catalog: catalog}
}

// Match returns the winning catalog entry, or nil when no tier hits.
func (m *Matcher) Match(text string) *Match {
	if text == "" {
		return nil
	}

	for _, in := range m.catalog.Intents() {
		for _, v := range in.Variants {
			if text == v {
				return &Match{Key: in.Key, Action: in.Action, Tier: TierExact}
			}
		}
	}

	for _, in := range m.catalog.Intents() {
		for _, v := range in.Variants {
			if strings.Contains(v, text) || strings.Contains(text, v) {
				return &Match{Key: in.Key, Action: in.Action, Tier: TierContainment}
			}
		}
	}

	tokens := strings.Fields(text)
	for _, in := range m.catalog.Intents() {
		for _, v := range in.Variants {
			if tokensOverlap(tokens, strings.Fields(v)) {
				return &Match{Key: in.Key, Action: in.Action, Tier: TierTokenOverlap}
			}
		}
	}

	return nil
}

// tokensOverlap reports whether any input token and any variant token
// contain one another.
func tokensOverlap(input, variant []string) bool {
	for _, it := range input {
		for _, vt := range variant {
			if strings.Contains(it, vt) || strings.Contains(vt, it) {
				return true
			}
		}
	}
	return false
}
