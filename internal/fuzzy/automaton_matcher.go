package fuzzy

import (
	"fuzzyterms/internal/automaton"
	"fuzzyterms/internal/termdict"
)

// AutomatonFuzzyMatcher drives a term dictionary cursor with a
// Levenshtein automaton ladder at a fixed maximum edit distance k. It
// is the fast path: acceptance is a DFA walk rather than a DP fill,
// and AutomatonTermCursor's seek skipping means whole ranges of the
// dictionary that can't possibly match are never visited.
//
// Accepting at distance k only tells the matcher "at most k edits".
// Recovering the term's *exact* distance (needed to compute its boost)
// means testing acceptance at i = 0, 1, ..., k in order and stopping at
// the first hit; the ladder builds each lower rung on first use and
// caches it, so later terms pay only for the automaton runs.
type AutomatonFuzzyMatcher struct {
	config *SimilarityConfig
	ladder *AutomatonLadder
	k      int
	cursor *AutomatonTermCursor

	distance int
	boost    float64
}

// NewAutomatonFuzzyMatcher builds a matcher over dict using the
// ladder's rung k as the active acceptor.
func NewAutomatonFuzzyMatcher(config *SimilarityConfig, ladder *AutomatonLadder, k int, dict termdict.Cursor) *AutomatonFuzzyMatcher {
	acceptor := NewAutomatonAcceptor(ladder.Rung(k))
	return &AutomatonFuzzyMatcher{
		config: config,
		ladder: ladder,
		k:      k,
		cursor: NewAutomatonTermCursor(dict, acceptor),
	}
}

// K returns the edit distance this matcher's active rung was built for.
func (m *AutomatonFuzzyMatcher) K() int {
	return m.k
}

func (m *AutomatonFuzzyMatcher) Next() bool {
	for m.cursor.Next() {
		if m.computeMatch() {
			return true
		}
	}
	return false
}

func (m *AutomatonFuzzyMatcher) Seek(key []byte) termdict.SeekResult {
	res := m.cursor.Seek(key)
	if res == termdict.End {
		return res
	}
	if m.computeMatch() {
		return res
	}
	if m.Next() {
		return termdict.NotFoundGreater
	}
	return termdict.End
}

// computeMatch fills in distance and boost for the term the cursor is
// currently positioned on and reports whether it strictly clears the
// minSimilarity threshold (sim > minSimilarity, not >=) — a rung-k
// acceptance only means "at most k edits", not "similar enough", so
// every acceptance still has to pass this check before being emitted.
// Short-circuits the exact-match case to boost 1.0 without consulting
// the ladder at all.
func (m *AutomatonFuzzyMatcher) computeMatch() bool {
	term := m.cursor.Term()
	if string(term) == m.config.Pattern().String() {
		m.distance = 0
		m.boost = 1
		return true
	}

	runes := []rune(string(term))
	dist := m.k
	for i := 0; i <= m.k; i++ {
		if automatonRunAccepts(m.ladder.Rung(i), runes) {
			dist = i
			break
		}
	}
	sim := Similarity(m.config.Pattern(), len(runes), dist)
	m.distance = dist
	m.boost = m.config.Boost(sim)
	return m.boost > 0
}

func (m *AutomatonFuzzyMatcher) Boost() float64 { return m.boost }
func (m *AutomatonFuzzyMatcher) Distance() int  { return m.distance }
func (m *AutomatonFuzzyMatcher) Term() []byte   { return m.cursor.Term() }
func (m *AutomatonFuzzyMatcher) Ord() int64     { return m.cursor.Ord() }
func (m *AutomatonFuzzyMatcher) DocFreq() int   { return m.cursor.DocFreq() }

func (m *AutomatonFuzzyMatcher) SeekOrd(ord int64) error {
	err := m.cursor.SeekOrd(ord)
	if err == nil {
		m.computeMatch()
	}
	return err
}

func (m *AutomatonFuzzyMatcher) Postings() termdict.PostingsIterator {
	return m.cursor.Postings()
}

func automatonRunAccepts(a automaton.SeekAutomaton, input []rune) bool {
	return automaton.Run(a, input)
}
