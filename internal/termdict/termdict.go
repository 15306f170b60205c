// Package termdict defines the contract this repository's fuzzy matcher
// consumes from a term dictionary / index reader, and from the query
// consumer that ranks emitted terms. Per the matching engine's scope,
// both are external collaborators: the real implementation is an
// on-disk sorted structure (FST, trie, or similar) with byte-lexicographic
// seek. This package carries only the contract plus a small in-memory
// reference implementation, used by the fuzzy package's own tests and
// by nothing else in a production deployment.
package termdict

import (
	"bytes"
	"errors"
)

// ErrOrdOutOfRange is returned by SeekOrd when the requested ordinal
// does not index any term in the dictionary.
var ErrOrdOutOfRange = errors.New("termdict: ordinal out of range")

// SeekResult reports the outcome of Cursor.Seek.
type SeekResult int

const (
	// Found means the cursor now sits exactly on the requested key.
	Found SeekResult = iota
	// NotFoundGreater means the requested key doesn't exist; the cursor
	// now sits on the smallest indexed key greater than it.
	NotFoundGreater
	// End means no key greater than or equal to the requested key
	// exists; the cursor is exhausted.
	End
)

// Compare is the byte-lexicographic comparator every term cursor in
// this package orders by.
func Compare(a, b []byte) int {
	return bytes.Compare(a, b)
}

// Cursor is a sorted, seekable cursor over a field's term dictionary.
// Implementations must visit terms in strictly ascending Compare order.
type Cursor interface {
	// Seek moves the cursor to key, or the smallest indexed key greater
	// than key if key itself is absent.
	Seek(key []byte) SeekResult

	// Next advances to the next term in order. Returns false once the
	// dictionary is exhausted; the cursor is then invalid until Seek.
	Next() bool

	// Term returns the term at the current position. Valid only after
	// Seek returns Found/NotFoundGreater or Next returns true.
	Term() []byte

	// Ord returns the ordinal position of the current term within the
	// dictionary.
	Ord() int64

	// SeekOrd repositions the cursor to the term at the given ordinal.
	SeekOrd(ord int64) error

	// DocFreq returns the number of documents containing the current
	// term.
	DocFreq() int

	// Postings returns a postings iterator for the current term.
	Postings() PostingsIterator
}

// CompetitiveFloor is the shared, consumer-published observable
// described in spec.md §3/§5: the minimum boost a term must exceed to
// still influence the consumer's ranking. It replaces the source's
// reflective "shared attribute" lookup with an explicit, caller-owned
// field passed at construction and read inside next(). Access is not
// synchronized: per §5, the enumerator and its consumer interleave
// strictly at next() boundaries, never concurrently.
type CompetitiveFloor struct {
	value float64
}

// NewCompetitiveFloor creates a floor starting at the given value
// (typically negative infinity's practical stand-in, 0 boosts being
// never emitted in the first place).
func NewCompetitiveFloor(initial float64) *CompetitiveFloor {
	return &CompetitiveFloor{value: initial}
}

// Get returns the current floor.
func (f *CompetitiveFloor) Get() float64 {
	return f.value
}

// Set publishes a new floor. Called by the consumer between next() calls.
func (f *CompetitiveFloor) Set(v float64) {
	f.value = v
}
