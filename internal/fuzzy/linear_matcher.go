package fuzzy

import "fuzzyterms/internal/termdict"

// typicalLongestTerm sizes the DP scratch buffers a LinearFuzzyMatcher
// allocates up front. It is not a limit — buffers grow on demand for
// any longer term — only a reasonable starting capacity so the common
// case allocates once.
const typicalLongestTerm = 19

// LinearFuzzyMatcher is the fallback matching strategy: it visits
// every term in the dictionary (restricted to the mandatory prefix)
// and computes a banded edit distance against the pattern directly,
// rather than compiling an automaton. It exists for edit budgets
// beyond automaton.MaxEditDistance, where building and determinizing
// a Levenshtein automaton stops being worth it.
//
// The distance computation is Ukkonen's banded variant: only the
// diagonal band of width maxDist around the matrix's main diagonal is
// filled, and a row whose minimum already exceeds maxDist proves the
// final distance will too, so the scan of the current term aborts
// without filling the rest of the matrix.
type LinearFuzzyMatcher struct {
	config *SimilarityConfig
	cursor termdict.Cursor

	prefix []rune
	suffix []rune
	prev   []int
	curr   []int

	distance int
	boost    float64
	ended    bool
}

// NewLinearFuzzyMatcher builds a matcher over dict.
func NewLinearFuzzyMatcher(config *SimilarityConfig, dict termdict.Cursor) *LinearFuzzyMatcher {
	bufSize := typicalLongestTerm + 1
	if n := config.SuffixRunes(); len(n)+1 > bufSize {
		bufSize = len(n) + 1
	}
	return &LinearFuzzyMatcher{
		config: config,
		cursor: dict,
		prefix: config.PrefixRunes(),
		suffix: config.SuffixRunes(),
		prev:   make([]int, bufSize),
		curr:   make([]int, bufSize),
	}
}

func (m *LinearFuzzyMatcher) Next() bool {
	if m.ended {
		return false
	}
	for m.cursor.Next() {
		if m.tryMatch() {
			return true
		}
		if m.ended {
			return false
		}
	}
	m.ended = true
	return false
}

func (m *LinearFuzzyMatcher) Seek(key []byte) termdict.SeekResult {
	res := m.cursor.Seek(key)
	if res == termdict.End {
		m.ended = true
		return res
	}
	m.ended = false
	if m.tryMatch() {
		return res
	}
	if m.Next() {
		return termdict.NotFoundGreater
	}
	return termdict.End
}

// tryMatch tests the cursor's current term, filling in distance and
// boost and returning true on a match, leaving the cursor positioned
// there either way. maxDist is a floored bound, so a term at exactly
// minSimilarity can still pass boundedEditDistance; the boost check
// below is what enforces the strict sim > minSimilarity requirement.
//
// A term that breaks the mandatory prefix and sorts after it sets
// m.ended: since the dictionary is in term order, no later term can
// ever restore the prefix, so the caller can stop scanning right here
// instead of running to the end of the dictionary.
func (m *LinearFuzzyMatcher) tryMatch() bool {
	term := m.cursor.Term()
	if string(term) == m.config.Pattern().String() {
		m.distance, m.boost = 0, 1
		return true
	}

	runes := []rune(string(term))
	if len(runes) < len(m.prefix) || !runesEqual(runes[:len(m.prefix)], m.prefix) {
		if m.pastPrefixRange(runes) {
			m.ended = true
		}
		return false
	}
	candidateSuffix := runes[len(m.prefix):]

	maxDist := m.config.MaxEditsForLength(len(runes))
	dist, ok := m.boundedEditDistance(m.suffix, candidateSuffix, maxDist)
	if !ok {
		return false
	}
	sim := Similarity(m.config.Pattern(), len(runes), dist)
	boost := m.config.Boost(sim)
	if boost <= 0 {
		return false
	}
	m.distance = dist
	m.boost = boost
	return true
}

// boundedEditDistance computes the edit distance between a and b,
// restricted to the band |i-j| <= maxDist, and reports ok=false the
// moment a full row's minimum proves the final distance will exceed
// maxDist. Grows m's scratch buffers if b is longer than their current
// capacity.
func (m *LinearFuzzyMatcher) boundedEditDistance(a, b []rune, maxDist int) (int, bool) {
	n, l := len(a), len(b)
	if n-l > maxDist || l-n > maxDist {
		return maxDist + 1, false
	}
	if l+1 > len(m.prev) {
		m.prev = make([]int, l+1)
		m.curr = make([]int, l+1)
	}
	prev, curr := m.prev[:l+1], m.curr[:l+1]
	inf := maxDist + 1

	for j := 0; j <= l; j++ {
		if j <= maxDist {
			prev[j] = j
		} else {
			prev[j] = inf
		}
	}

	for i := 1; i <= n; i++ {
		lo := i - maxDist
		if lo < 0 {
			lo = 0
		}
		hi := i + maxDist
		if hi > l {
			hi = l
		}
		for j := 0; j < lo; j++ {
			curr[j] = inf
		}
		for j := hi + 1; j <= l; j++ {
			curr[j] = inf
		}

		rowMin := inf
		for j := lo; j <= hi; j++ {
			if j == 0 {
				curr[j] = i
			} else {
				cost := 1
				if a[i-1] == b[j-1] {
					cost = 0
				}
				val := prev[j-1] + cost
				if del := prev[j] + 1; del < val {
					val = del
				}
				if ins := curr[j-1] + 1; ins < val {
					val = ins
				}
				curr[j] = val
			}
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}
		if rowMin > maxDist {
			return maxDist + 1, false
		}
		prev, curr = curr, prev
	}

	if prev[l] > maxDist {
		return maxDist + 1, false
	}
	m.prev, m.curr = prev, curr
	return prev[l], true
}

// pastPrefixRange reports whether runes sorts strictly after every
// term that could still carry the mandatory prefix m.prefix, i.e.
// whether the dictionary has moved past the contiguous range of
// prefixed terms entirely rather than merely sitting before it or
// being a too-short term within it.
func (m *LinearFuzzyMatcher) pastPrefixRange(runes []rune) bool {
	if len(m.prefix) == 0 {
		return false
	}
	limit := len(m.prefix)
	if len(runes) < limit {
		limit = len(runes)
	}
	for i := 0; i < limit; i++ {
		if runes[i] != m.prefix[i] {
			return runes[i] > m.prefix[i]
		}
	}
	return false
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (m *LinearFuzzyMatcher) Boost() float64 { return m.boost }
func (m *LinearFuzzyMatcher) Distance() int  { return m.distance }
func (m *LinearFuzzyMatcher) Term() []byte   { return m.cursor.Term() }
func (m *LinearFuzzyMatcher) Ord() int64     { return m.cursor.Ord() }
func (m *LinearFuzzyMatcher) DocFreq() int   { return m.cursor.DocFreq() }

func (m *LinearFuzzyMatcher) SeekOrd(ord int64) error {
	if err := m.cursor.SeekOrd(ord); err != nil {
		return err
	}
	m.ended = false
	if !m.tryMatch() {
		m.Next()
	}
	return nil
}

func (m *LinearFuzzyMatcher) Postings() termdict.PostingsIterator {
	return m.cursor.Postings()
}
