package fuzzy

import (
	"math"

	"fuzzyterms/internal/termdict"
)

// AdaptiveFuzzyEnumerator is the public entry point of the matching
// engine: a single-threaded, pull-based iterator over a term
// dictionary that narrows its own search radius as the consumer's
// competitive boost floor rises, and hot-swaps between the automaton
// ladder and the linear fallback as that radius crosses
// automaton.MaxEditDistance.
//
// The consumer interleaves calls to Next with calls to
// termdict.CompetitiveFloor.Set — never concurrently, per this
// module's single-threaded cooperative model. adapt is checked once
// per Next call, immediately before asking the active backing matcher
// to advance, so a floor update takes effect on the very next pull.
type AdaptiveFuzzyEnumerator struct {
	config *SimilarityConfig
	ladder *AutomatonLadder
	dict   termdict.Cursor
	floor  *termdict.CompetitiveFloor

	current     BackingMatcher
	activeEdits int // -1 until the first matcher is installed.
	lastEmitted []byte
}

// NewAdaptiveFuzzyEnumerator builds an enumerator over dict for
// config, reading its search radius from floor on every Next call.
// floor may be nil, in which case the enumerator never narrows and
// always searches the full edit budget config.MaxEdits() allows.
func NewAdaptiveFuzzyEnumerator(config *SimilarityConfig, dict termdict.Cursor, floor *termdict.CompetitiveFloor) *AdaptiveFuzzyEnumerator {
	return &AdaptiveFuzzyEnumerator{
		config:      config,
		ladder:      NewAutomatonLadder(config),
		dict:        dict,
		floor:       floor,
		activeEdits: -1,
	}
}

// Next advances to the next matching term in dictionary order,
// re-adapting the backing matcher first if the competitive floor has
// moved since the last call. Returns false once the dictionary (or
// the active automaton's language) is exhausted.
func (e *AdaptiveFuzzyEnumerator) Next() bool {
	e.adapt()
	if !e.current.Next() {
		return false
	}
	e.lastEmitted = append(e.lastEmitted[:0], e.current.Term()...)
	return true
}

// adapt installs whichever backing matcher the current competitive
// floor calls for, resuming from the last emitted term so narrowing
// the search never revisits or skips a term. The cursor is left
// positioned ON lastEmitted, not past it: every BackingMatcher's own
// Next() leads with a cursor advance (it must, since the cursor is
// already sitting on the term that was just emitted), so seeking here
// and then pre-advancing too would land the new matcher one term past
// where it should resume, silently dropping the first candidate.
func (e *AdaptiveFuzzyEnumerator) adapt() {
	desired := e.desiredEdits()
	if e.current != nil && desired == e.activeEdits {
		return
	}
	if e.lastEmitted != nil {
		e.dict.Seek(e.lastEmitted)
	}
	if desired <= e.ladder.MaxRung() {
		e.current = NewAutomatonFuzzyMatcher(e.config, e.ladder, desired, e.dict)
	} else {
		e.current = NewLinearFuzzyMatcher(e.config, e.dict)
	}
	e.activeEdits = desired
}

// desiredEdits converts the current competitive floor into the edit
// distance budget the active matcher should be narrowed to, clamped so
// it never exceeds the budget already installed: k only ever
// decreases as the floor rises, even if a consumer lowers the floor
// again after having raised it (or drops it back to zero). Once
// narrowing has happened the shared cursor has already skipped past
// terms a wider automaton would need to see (via AcceptNoAndSeek), so
// re-widening past the installed k can't be done correctly — only the
// very first call (e.current == nil) is unclamped.
//
// The schedule follows the adapt loop's maxBoostAt(k) = (1 - k/|W| -
// minSimilarity) * scale: a term can still clear floor β at budget k
// only while β < maxBoostAt(k), i.e. while
//
//	k < (1 - minSimilarity) * (1 - β) * len(pattern)
//
// so the narrowest budget that still admits β is the largest integer
// strictly below that bound, ceil((1 - minSimilarity) * (1 - β) *
// len(pattern)) - 1.
func (e *AdaptiveFuzzyEnumerator) desiredEdits() int {
	k := e.config.MaxEdits()
	if e.floor != nil {
		if floor := e.floor.Get(); floor > 0 {
			bound := (1 - e.config.MinSimilarity()) * (1 - floor) * float64(e.config.Pattern().Len())
			k = int(math.Ceil(bound)) - 1
			if k > e.config.MaxEdits() {
				k = e.config.MaxEdits()
			}
			if k < 0 {
				k = 0
			}
		}
	}
	if e.current != nil && k > e.activeEdits {
		k = e.activeEdits
	}
	return k
}

// Term returns the current term. Valid only immediately after Next
// returns true.
func (e *AdaptiveFuzzyEnumerator) Term() []byte { return e.current.Term() }

// Boost returns the current term's competitive score.
func (e *AdaptiveFuzzyEnumerator) Boost() float64 { return e.current.Boost() }

// Distance returns the current term's edit distance from the pattern.
func (e *AdaptiveFuzzyEnumerator) Distance() int { return e.current.Distance() }

// DocFreq proxies to the active backing matcher's cursor.
func (e *AdaptiveFuzzyEnumerator) DocFreq() int { return e.current.DocFreq() }

// Postings proxies to the active backing matcher's cursor.
func (e *AdaptiveFuzzyEnumerator) Postings() termdict.PostingsIterator {
	return e.current.Postings()
}

// Ord proxies to the active backing matcher's cursor.
func (e *AdaptiveFuzzyEnumerator) Ord() int64 { return e.current.Ord() }

// Emit packages the current position as an EmissionRecord.
func (e *AdaptiveFuzzyEnumerator) Emit() EmissionRecord {
	return EmissionRecord{
		Term:     append([]byte(nil), e.Term()...),
		Boost:    e.Boost(),
		Distance: e.Distance(),
	}
}

// ActiveEdits reports the edit distance budget currently installed,
// for tests and diagnostics.
func (e *AdaptiveFuzzyEnumerator) ActiveEdits() int { return e.activeEdits }
