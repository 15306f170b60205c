package fuzzy

import (
	"fuzzyterms/internal/automaton"
)

// AutomatonLadder lazily builds and caches, for a fixed SimilarityConfig,
// the Concat(prefix, Lev_k(suffix)) automaton for every edit distance
// from 0 up to MaxRung(). Each rung is built at most once and reused
// for the lifetime of the ladder: building Lev_k is not free, and a
// single enumeration asks for the same rungs repeatedly, since
// AutomatonFuzzyMatcher scans rungs 0..k for every accepted term and
// the adaptive enumerator installs lower rungs as it narrows.
type AutomatonLadder struct {
	config *SimilarityConfig
	rungs  []automaton.SeekAutomaton // rungs[k] is Concat(prefix, Lev_k(suffix)); nil until built.
}

// NewAutomatonLadder creates a ladder for config. No automaton is built
// until first requested via Rung.
func NewAutomatonLadder(config *SimilarityConfig) *AutomatonLadder {
	maxEdits := config.MaxEdits()
	if maxEdits > automaton.MaxEditDistance {
		maxEdits = automaton.MaxEditDistance
	}
	return &AutomatonLadder{
		config: config,
		rungs:  make([]automaton.SeekAutomaton, maxEdits+1),
	}
}

// MaxRung returns the highest edit distance this ladder can build an
// automaton for (min of the config's max edits and the automaton
// package's MaxEditDistance).
func (l *AutomatonLadder) MaxRung() int {
	return len(l.rungs) - 1
}

// Rung returns the automaton accepting exactly the prefix-anchored
// candidates within edit distance k of the pattern's suffix, building
// and caching it on first request. k must be in [0, MaxRung()].
func (l *AutomatonLadder) Rung(k int) automaton.SeekAutomaton {
	if l.rungs[k] != nil {
		return l.rungs[k]
	}
	inner, err := automaton.NewLevenshteinAutomaton(l.config.SuffixRunes(), k)
	if err != nil {
		// k is always bounds-checked by the caller against MaxRung,
		// which in turn is bounds-checked against automaton.MaxEditDistance,
		// so construction cannot fail here.
		panic(err)
	}
	built := automaton.Concat(l.config.PrefixRunes(), inner)
	l.rungs[k] = built
	return built
}
