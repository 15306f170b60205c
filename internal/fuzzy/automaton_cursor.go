package fuzzy

import (
	"fuzzyterms/internal/automaton"
	"fuzzyterms/internal/termdict"
)

// AcceptStatus reports the result of testing a single term against an
// Acceptor, mirroring the "accept, reject, reject-but-you-can-skip-ahead,
// nothing further will ever match" taxonomy a filtered term enumeration
// needs to both filter and skip efficiently over a sorted dictionary.
type AcceptStatus int

const (
	// AcceptYes means the term is accepted.
	AcceptYes AcceptStatus = iota
	// AcceptNo means the term is rejected; the caller should advance to
	// the dictionary's next term and try again.
	AcceptNo
	// AcceptNoAndSeek means the term is rejected, and no term before
	// the returned seek target can possibly be accepted either, so the
	// caller should seek there directly instead of scanning.
	AcceptNoAndSeek
	// AcceptEnd means no term equal to or greater than the current one
	// can ever be accepted; enumeration is complete.
	AcceptEnd
)

// Acceptor decides, for each candidate term in dictionary order,
// whether it matches and — when it doesn't — how far ahead in the
// sorted dictionary a cursor can safely jump without passing over a
// term that would match.
type Acceptor interface {
	Accept(term []rune) (status AcceptStatus, seekTarget []rune)
}

// automatonAcceptor is the Acceptor driven by a rune automaton
// (typically a rung of an AutomatonLadder). When a term's walk dies,
// its seek computation produces a conservative lower bound on the next
// possibly-accepted term (AcceptNoAndSeek), or reports AcceptEnd when
// no greater term can keep the automaton alive. A term whose walk stays
// alive without ending in an accepting state gets AcceptNo, and the
// caller advances linearly. Correctness never depends on the seek bound
// being tight, only on it never exceeding the true next acceptable term.
type automatonAcceptor struct {
	aut automaton.SeekAutomaton
}

// NewAutomatonAcceptor builds an Acceptor backed by aut.
func NewAutomatonAcceptor(aut automaton.SeekAutomaton) Acceptor {
	return &automatonAcceptor{aut: aut}
}

func (a *automatonAcceptor) Accept(term []rune) (AcceptStatus, []rune) {
	states := make([]automaton.State, len(term)+1)
	states[0] = a.aut.Start()
	deadAt := -1
	for i, r := range term {
		states[i+1] = a.aut.Step(states[i], r)
		if states[i+1] == automaton.DeadState || !a.aut.CanMatch(states[i+1]) {
			deadAt = i + 1
			break
		}
	}
	if deadAt == -1 {
		if a.aut.IsAccept(states[len(term)]) {
			return AcceptYes, nil
		}
		return AcceptNo, nil
	}

	target, ok := a.seekTarget(term, states[:deadAt])
	if !ok {
		return AcceptEnd, nil
	}
	return AcceptNoAndSeek, target
}

// seekTarget searches backward from the position the walk died at for
// the rightmost place a larger rune keeps the automaton alive,
// producing the shortest rune sequence that is (a) lexically greater
// than term and (b) not lexically greater than the true next
// acceptable term, by fixing the live prefix and appending the
// smallest rune known to keep the automaton alive there. See
// LiveRunes in the automaton package for why its any/specific split
// is exactly what this needs.
func (a *automatonAcceptor) seekTarget(term []rune, states []automaton.State) ([]rune, bool) {
	for j := len(states) - 1; j >= 0; j-- {
		anyRune, specific := a.aut.LiveRunes(states[j])
		var candidate rune
		found := false
		if anyRune {
			candidate = nextRune(term[j])
			found = true
		} else {
			best := rune(-1)
			for _, r := range specific {
				if r > term[j] && (best == -1 || r < best) {
					best = r
				}
			}
			if best != -1 {
				candidate, found = best, true
			}
		}
		if found {
			target := make([]rune, j+1)
			copy(target, term[:j])
			target[j] = candidate
			return target, true
		}
	}
	return nil, false
}

// nextRune returns the smallest rune strictly greater than r, skipping
// the UTF-16 surrogate range (which is not valid as a standalone
// Unicode scalar value and so can never appear in a decoded term).
func nextRune(r rune) rune {
	next := r + 1
	if next >= 0xD800 && next <= 0xDFFF {
		return 0xE000
	}
	return next
}

// AutomatonTermCursor adapts an Acceptor over a termdict.Cursor into a
// termdict.Cursor that yields only accepted terms, skipping ahead in
// the dictionary wherever the Acceptor can prove it's safe to. Every
// read-only accessor other than Seek/Next passes straight through to
// the underlying cursor positioned at the last accepted term.
type AutomatonTermCursor struct {
	cursor   termdict.Cursor
	acceptor Acceptor
	ended    bool
}

// NewAutomatonTermCursor wraps cursor with acceptor.
func NewAutomatonTermCursor(cursor termdict.Cursor, acceptor Acceptor) *AutomatonTermCursor {
	return &AutomatonTermCursor{cursor: cursor, acceptor: acceptor}
}

func (c *AutomatonTermCursor) Next() bool {
	if c.ended {
		return false
	}
	advance := true
	for {
		if advance {
			if !c.cursor.Next() {
				c.ended = true
				return false
			}
		}
		switch status, seekTarget := c.acceptor.Accept([]rune(string(c.cursor.Term()))); status {
		case AcceptYes:
			return true
		case AcceptEnd:
			c.ended = true
			return false
		case AcceptNoAndSeek:
			if c.cursor.Seek([]byte(string(seekTarget))) == termdict.End {
				c.ended = true
				return false
			}
			advance = false
		default: // AcceptNo
			advance = true
		}
	}
}

func (c *AutomatonTermCursor) Seek(key []byte) termdict.SeekResult {
	if c.cursor.Seek(key) == termdict.End {
		c.ended = true
		return termdict.End
	}
	c.ended = false
	for {
		switch status, seekTarget := c.acceptor.Accept([]rune(string(c.cursor.Term()))); status {
		case AcceptYes:
			if termdict.Compare(c.cursor.Term(), key) == 0 {
				return termdict.Found
			}
			return termdict.NotFoundGreater
		case AcceptEnd:
			c.ended = true
			return termdict.End
		case AcceptNoAndSeek:
			if c.cursor.Seek([]byte(string(seekTarget))) == termdict.End {
				c.ended = true
				return termdict.End
			}
		default: // AcceptNo
			if !c.cursor.Next() {
				c.ended = true
				return termdict.End
			}
		}
	}
}

func (c *AutomatonTermCursor) Term() []byte            { return c.cursor.Term() }
func (c *AutomatonTermCursor) Ord() int64               { return c.cursor.Ord() }
func (c *AutomatonTermCursor) SeekOrd(ord int64) error  { return c.cursor.SeekOrd(ord) }
func (c *AutomatonTermCursor) DocFreq() int             { return c.cursor.DocFreq() }

func (c *AutomatonTermCursor) Postings() termdict.PostingsIterator {
	return c.cursor.Postings()
}
