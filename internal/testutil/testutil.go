// Package testutil provides fixtures shared by the fuzzy matching
// engine's test suites: sample text to derive a realistic vocabulary
// from, and small term dictionaries built from that vocabulary.
package testutil

import (
	"testing"

	"fuzzyterms/internal/analysis"
	"fuzzyterms/internal/termdict"
)

// SampleCorpus returns a handful of short documents, varied enough to
// produce a vocabulary with shared prefixes, near-duplicate spellings,
// and a range of term lengths — the kind of input a fuzzy matcher's
// tests want to exercise against.
func SampleCorpus() []string {
	return []string{
		"Introduction to Search Engines",
		"Full-text search is a technique for searching documents",
		"Advanced Query Processing",
		"Boolean queries combine multiple search terms using AND OR operators",
		"Building an Inverted Index",
		"An inverted index maps terms to the documents containing them",
		"BM25 Scoring Algorithm",
		"BM25 is a ranking function used by search engines to estimate relevance",
		"Fuzzy Search with Levenshtein Automata",
		"Fuzzy search finds terms within an edit distance of the query term",
		"Programming Languages and Compilers",
		"Programmer productivity depends on tooling and language ergonomics",
	}
}

// ExtractVocabulary tokenizes every document in corpus with a
// standard analyzer and returns the distinct terms produced. This is
// how the fuzzy package's own tests get realistic term material
// instead of hand-picked word lists for every scenario.
func ExtractVocabulary(corpus []string) []string {
	return analysis.Vocabulary(analysis.NewStandardAnalyzer(), "body", corpus)
}

// SampleDictionary builds a termdict.SliceDictionary from
// SampleCorpus's vocabulary, with a synthetic posting on every term so
// DocFreq/Postings have something to return.
func SampleDictionary() *termdict.SliceDictionary {
	terms := ExtractVocabulary(SampleCorpus())
	d := termdict.NewSliceDictionary(terms)
	for i, term := range terms {
		d.SetPostings(term, []uint32{uint32(i), uint32(i + 1)}, nil)
	}
	return d
}

// DictionaryFromTerms builds a termdict.SliceDictionary directly from
// an explicit term list, for tests that need precise control over
// dictionary contents rather than a derived vocabulary.
func DictionaryFromTerms(terms []string) *termdict.SliceDictionary {
	return termdict.NewSliceDictionary(terms)
}

// AssertSorted fails the test if terms is not byte-lexicographically
// ascending, the invariant every term cursor in this module promises
// its consumer.
func AssertSorted(t *testing.T, terms [][]byte) {
	t.Helper()
	for i := 1; i < len(terms); i++ {
		if termdict.Compare(terms[i-1], terms[i]) >= 0 {
			t.Errorf("terms not strictly ascending at index %d: %q >= %q", i, terms[i-1], terms[i])
		}
	}
}
