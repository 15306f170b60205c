package termdict

import "sort"

// entry is one term's dictionary record.
type entry struct {
	term   []byte
	docIDs []uint32
	freqs  []uint32
}

// SliceDictionary is an in-memory, sorted term dictionary. It is the
// reference implementation of the Cursor contract described in this
// package's doc comment: sufficient for tests, never intended to back
// a real index.
type SliceDictionary struct {
	entries []entry
}

// NewSliceDictionary builds a dictionary from the given terms. Terms
// are sorted byte-lexicographically; duplicates are rejected by the
// caller's responsibility, not validated here (mirrors the teacher's
// preference for construction-time validation only where it's cheap
// and meaningful — here it would mean an O(n log n) dedup pass the
// caller can just as easily avoid by construction).
func NewSliceDictionary(terms []string) *SliceDictionary {
	entries := make([]entry, len(terms))
	for i, t := range terms {
		entries[i] = entry{term: []byte(t)}
	}
	sort.Slice(entries, func(i, j int) bool {
		return Compare(entries[i].term, entries[j].term) < 0
	})
	return &SliceDictionary{entries: entries}
}

// SetPostings attaches a postings list to term, if present. Intended
// for test setup, not for use on a hot path.
func (d *SliceDictionary) SetPostings(term string, docIDs, freqs []uint32) {
	b := []byte(term)
	for i := range d.entries {
		if Compare(d.entries[i].term, b) == 0 {
			d.entries[i].docIDs = docIDs
			d.entries[i].freqs = freqs
			return
		}
	}
}

// Cursor returns a fresh Cursor over the dictionary, initially
// unpositioned.
func (d *SliceDictionary) Cursor() Cursor {
	return &sliceCursor{dict: d, pos: -1}
}

// Len returns the number of distinct terms in the dictionary.
func (d *SliceDictionary) Len() int {
	return len(d.entries)
}

type sliceCursor struct {
	dict *SliceDictionary
	pos  int
}

func (c *sliceCursor) Seek(key []byte) SeekResult {
	entries := c.dict.entries
	i := sort.Search(len(entries), func(i int) bool {
		return Compare(entries[i].term, key) >= 0
	})
	c.pos = i
	switch {
	case i >= len(entries):
		return End
	case Compare(entries[i].term, key) == 0:
		return Found
	default:
		return NotFoundGreater
	}
}

func (c *sliceCursor) Next() bool {
	if c.pos+1 >= len(c.dict.entries) {
		c.pos = len(c.dict.entries)
		return false
	}
	c.pos++
	return true
}

func (c *sliceCursor) Term() []byte {
	return c.dict.entries[c.pos].term
}

func (c *sliceCursor) Ord() int64 {
	return int64(c.pos)
}

func (c *sliceCursor) SeekOrd(ord int64) error {
	if ord < 0 || int(ord) >= len(c.dict.entries) {
		return ErrOrdOutOfRange
	}
	c.pos = int(ord)
	return nil
}

func (c *sliceCursor) DocFreq() int {
	return len(c.dict.entries[c.pos].docIDs)
}

func (c *sliceCursor) Postings() PostingsIterator {
	e := c.dict.entries[c.pos]
	return NewSlicePostingsIterator(e.docIDs, e.freqs)
}
