package automaton

// ConcatAutomaton accepts exactly literal+L(inner): a fixed literal
// prefix, followed by whatever inner accepts. It is how the prefix
// requirement L is folded into the Levenshtein ladder: rather than
// filtering candidates for a literal prefix separately, the prefix
// becomes part of the automaton itself, so AutomatonTermCursor's range
// skipping also benefits from it.
//
// States 1..len(literal) track an exact, sequential match against the
// literal; state len(literal)+1 onward are inner's own states, shifted
// by len(literal) so the two state spaces never collide.
type ConcatAutomaton struct {
	literal []rune
	inner   SeekAutomaton
	offset  State
}

// Concat builds the automaton for literal followed by inner.
func Concat(literal []rune, inner SeekAutomaton) *ConcatAutomaton {
	return &ConcatAutomaton{
		literal: literal,
		inner:   inner,
		offset:  State(len(literal)),
	}
}

func (c *ConcatAutomaton) Start() State {
	if len(c.literal) == 0 {
		return c.offset + c.inner.Start()
	}
	return 1
}

func (c *ConcatAutomaton) Step(state State, r rune) State {
	if state == DeadState {
		return DeadState
	}
	if state <= State(len(c.literal)) {
		pos := int(state) - 1
		if r != c.literal[pos] {
			return DeadState
		}
		pos++
		if pos == len(c.literal) {
			return c.offset + c.inner.Start()
		}
		return State(pos + 1)
	}
	next := c.inner.Step(state-c.offset, r)
	if next == DeadState {
		return DeadState
	}
	return c.offset + next
}

func (c *ConcatAutomaton) IsAccept(state State) bool {
	if state == DeadState || state <= State(len(c.literal)) {
		return false
	}
	return c.inner.IsAccept(state - c.offset)
}

func (c *ConcatAutomaton) CanMatch(state State) bool {
	if state == DeadState {
		return false
	}
	if state <= State(len(c.literal)) {
		return true
	}
	return c.inner.CanMatch(state - c.offset)
}

// LiveRunes delegates to inner once the literal has been fully matched;
// while still inside the literal, the only live rune is the next
// literal character.
func (c *ConcatAutomaton) LiveRunes(state State) (bool, []rune) {
	if state == DeadState {
		return false, nil
	}
	if state <= State(len(c.literal)) {
		return false, []rune{c.literal[int(state)-1]}
	}
	return c.inner.LiveRunes(state - c.offset)
}
