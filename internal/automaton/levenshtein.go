package automaton

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// MaxEditDistance is the ceiling on the edit distance this package will
// build an automaton for. Parametric NFA state count grows roughly as
// |target|*k, and determinization cost grows superlinearly on top of
// that, so distances beyond this are the linear fallback's job, not the
// automaton's.
const MaxEditDistance = 2

var ErrEditDistanceTooLarge = errors.New("edit distance exceeds maximum of 2")

// nfaState is a single state in the parametric Levenshtein NFA: having
// consumed pos characters of the target using edits edits so far.
type nfaState struct {
	pos, edits int
}

// LevenshteinAutomaton accepts exactly the Unicode scalar sequences
// within edit distance ≤ maxDist of target, under the standard
// three-operation model (insert, delete, substitute — no transposition).
//
// It is built as a nondeterministic automaton over states (pos, edits)
// with an ε-transition for deletion, then determinized lazily: each DFA
// state is the (interned) subset of NFA states reachable after the
// input seen so far, computed and cached the first time Step visits it.
// Construction is lazy because the rune alphabet is effectively
// unbounded, so eager enumeration of every transition isn't an option.
type LevenshteinAutomaton struct {
	target  []rune
	maxDist int

	subsets []map[nfaState]bool // subsets[0] is unused; DFA states are 1-based, DeadState(0) is the sink.
	intern  map[string]State
	trans   map[transKey]State
}

type transKey struct {
	state State
	r     rune
}

// NewLevenshteinAutomaton builds Lev_maxDist(target).
func NewLevenshteinAutomaton(target []rune, maxDist int) (*LevenshteinAutomaton, error) {
	if maxDist < 0 || maxDist > MaxEditDistance {
		return nil, ErrEditDistanceTooLarge
	}
	a := &LevenshteinAutomaton{
		target:  target,
		maxDist: maxDist,
		intern:  make(map[string]State),
		trans:   make(map[transKey]State),
	}
	start := epsilonClosure(map[nfaState]bool{{0, 0}: true}, maxDist, len(target))
	a.internSubset(start) // reserve state 1 as Start, regardless of later lookups.
	return a, nil
}

func (a *LevenshteinAutomaton) Start() State {
	return 1
}

func (a *LevenshteinAutomaton) Step(state State, r rune) State {
	if state == DeadState {
		return DeadState
	}
	key := transKey{state, r}
	if next, ok := a.trans[key]; ok {
		return next
	}

	subset := a.subsets[state]
	next := make(map[nfaState]bool)
	for s := range subset {
		a.stepNFAState(s, r, next)
	}
	closure := epsilonClosure(next, a.maxDist, len(a.target))

	var result State
	if len(closure) == 0 {
		result = DeadState
	} else {
		result = a.internSubset(closure)
	}
	a.trans[key] = result
	return result
}

// stepNFAState adds to out every NFA state reachable from s by
// consuming the single rune r.
func (a *LevenshteinAutomaton) stepNFAState(s nfaState, r rune, out map[nfaState]bool) {
	n := len(a.target)

	// Match: advance position, edit budget unchanged. Only possible
	// while target characters remain.
	if s.pos < n && a.target[s.pos] == r {
		out[nfaState{s.pos + 1, s.edits}] = true
	}

	if s.edits >= a.maxDist {
		return
	}

	// Substitution: r replaces target[pos] (only while target remains).
	if s.pos < n && a.target[s.pos] != r {
		out[nfaState{s.pos + 1, s.edits + 1}] = true
	}

	// Insertion: r is an extra character not present in target; this is
	// valid at any position, including past the end of target.
	out[nfaState{s.pos, s.edits + 1}] = true
}

// epsilonClosure extends a set of NFA states with every state reachable
// via deletion ε-transitions: (pos, e) -> (pos+1, e+1) while e < maxDist
// and pos < n.
func epsilonClosure(states map[nfaState]bool, maxDist, n int) map[nfaState]bool {
	closure := make(map[nfaState]bool, len(states))
	stack := make([]nfaState, 0, len(states))
	for s := range states {
		closure[s] = true
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.edits >= maxDist || s.pos >= n {
			continue
		}
		next := nfaState{s.pos + 1, s.edits + 1}
		if !closure[next] {
			closure[next] = true
			stack = append(stack, next)
		}
	}
	return closure
}

func (a *LevenshteinAutomaton) IsAccept(state State) bool {
	if state == DeadState {
		return false
	}
	n := len(a.target)
	for s := range a.subsets[state] {
		if n-s.pos <= a.maxDist-s.edits {
			return true
		}
	}
	return false
}

func (a *LevenshteinAutomaton) CanMatch(state State) bool {
	return state != DeadState
}

// LiveRunes reports whether state stays alive for an arbitrary rune
// (true whenever some member of the subset still has edit budget left,
// since insertion then fires unconditionally) or, once every member's
// budget is exhausted, only for the specific target runes that a match
// transition can still consume.
func (a *LevenshteinAutomaton) LiveRunes(state State) (bool, []rune) {
	if state == DeadState {
		return false, nil
	}
	n := len(a.target)
	var specific []rune
	for s := range a.subsets[state] {
		if s.edits < a.maxDist {
			return true, nil
		}
		if s.pos < n {
			specific = append(specific, a.target[s.pos])
		}
	}
	return false, specific
}

// internSubset returns the canonical State for subset, allocating a new
// one (and caching it under subsets) the first time this exact subset
// of NFA states is seen.
func (a *LevenshteinAutomaton) internSubset(subset map[nfaState]bool) State {
	key := subsetKey(subset)
	if s, ok := a.intern[key]; ok {
		return s
	}
	if len(a.subsets) == 0 {
		a.subsets = append(a.subsets, nil) // index 0 unused, keeps DeadState special.
	}
	id := State(len(a.subsets))
	a.subsets = append(a.subsets, subset)
	a.intern[key] = id
	return id
}

// subsetKey produces a canonical string key for a set of NFA states,
// independent of Go's map iteration order.
func subsetKey(subset map[nfaState]bool) string {
	ids := make([]int, 0, len(subset))
	for s := range subset {
		ids = append(ids, s.pos*1000+s.edits)
	}
	sort.Ints(ids)
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}
