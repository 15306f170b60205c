// Package automaton builds the Levenshtein-distance automata that back
// fuzzy term matching. It operates on Unicode scalar sequences (runes)
// rather than raw bytes, since edit distance is defined over characters,
// not their UTF-8 encoding.
package automaton

// State identifies a state in a deterministic automaton. DeadState (the
// zero value) is the sink state from which no accepting state is
// reachable; every automaton in this package treats it that way so
// callers can use the zero value as a safe default.
type State uint32

// DeadState is the sink state.
const DeadState State = 0

// RuneAutomaton is a deterministic automaton over Unicode scalar values.
//
// Properties:
//   - Deterministic: exactly one transition per (state, rune).
//   - No ε-transitions are visible to callers; any epsilon closure
//     required by the construction (e.g. Levenshtein deletions) is
//     folded into Step.
type RuneAutomaton interface {
	// Start returns the initial state.
	Start() State

	// Step returns the next state after consuming r, or DeadState if no
	// transition exists.
	Step(state State, r rune) State

	// IsAccept reports whether state is an accepting state.
	IsAccept(state State) bool

	// CanMatch reports whether any accepting state is reachable from
	// state. Used to prune dead branches during cursor-driven skipping.
	CanMatch(state State) bool
}

// SeekAutomaton is a RuneAutomaton that can additionally describe, for a
// given state, which runes keep it alive. This is the capability
// AutomatonTermCursor needs to skip ranges of a sorted term dictionary
// instead of visiting every term: rather than enumerating the (possibly
// enormous) rune alphabet, it asks the automaton which runes matter.
type SeekAutomaton interface {
	RuneAutomaton

	// LiveRunes reports, for state, whether an arbitrary rune keeps the
	// automaton alive (anyRune == true, in which case specific is nil),
	// or whether only the runes in specific do. specific need not be
	// sorted or deduplicated.
	LiveRunes(state State) (anyRune bool, specific []rune)
}

// Run walks a over input from its start state and reports whether it
// ends in an accepting state. It is the "compiled runnable matcher"
// form of an automaton: callers that only need a yes/no acceptance test
// (as opposed to cursor-driven structural walking) use this instead of
// driving Step/IsAccept themselves.
func Run(a RuneAutomaton, input []rune) bool {
	state := a.Start()
	for _, r := range input {
		state = a.Step(state, r)
		if state == DeadState {
			return false
		}
	}
	return a.IsAccept(state)
}
