package fuzzy

import (
	"testing"

	"fuzzyterms/internal/termdict"
)

func TestAdaptiveFuzzyEnumerator_EnumeratesAllMatchesAtFullBudget(t *testing.T) {
	p, _ := NewPattern("foobar")
	c, _ := NewSimilarityConfig(p, 0.3, 0)
	dict := termdict.NewSliceDictionary([]string{"foobar", "foobaz", "foobart", "unrelated"})

	e := NewAdaptiveFuzzyEnumerator(c, dict.Cursor(), nil)
	var got []string
	for e.Next() {
		got = append(got, string(e.Term()))
	}
	want := map[string]bool{"foobar": true, "foobaz": true, "foobart": true}
	if len(got) != len(want) {
		t.Fatalf("got %v, want keys of %v", got, want)
	}
	for _, term := range got {
		if !want[term] {
			t.Errorf("unexpected match %q", term)
		}
	}
}

func TestAdaptiveFuzzyEnumerator_MandatoryPrefix(t *testing.T) {
	p, _ := NewPattern("hello")
	c, _ := NewSimilarityConfig(p, 0.3, 2) // prefix "he"
	dict := termdict.NewSliceDictionary([]string{"hello", "help", "world"})

	e := NewAdaptiveFuzzyEnumerator(c, dict.Cursor(), nil)
	var got []string
	for e.Next() {
		got = append(got, string(e.Term()))
	}
	for _, term := range got {
		if term == "world" {
			t.Error("world does not share the mandatory prefix 'he' and should not match")
		}
	}
}

func TestAdaptiveFuzzyEnumerator_RisingFloorNarrowsWithoutDroppingSurvivors(t *testing.T) {
	// At minSimilarity 0 every distance up to len(pattern) is in budget,
	// well beyond automaton.MaxEditDistance, so this starts on the
	// linear matcher and should narrow onto the automaton ladder as the
	// floor rises, without ever losing a term that still
	// clears the floor.
	p, _ := NewPattern("programming")
	c, _ := NewSimilarityConfig(p, 0.0, 0)
	dict := termdict.NewSliceDictionary([]string{
		"programming", "programmer", "programs", "pr0gramming", "xyzxyzxyzxyz",
	})
	floor := termdict.NewCompetitiveFloor(0)

	e := NewAdaptiveFuzzyEnumerator(c, dict.Cursor(), floor)

	if !e.Next() {
		t.Fatal("expected at least one match")
	}
	if string(e.Term()) != "pr0gramming" {
		t.Fatalf("first match = %q, want pr0gramming (sorted before programming)", e.Term())
	}

	// Raise the floor past every remaining candidate's boost except the
	// exact match, simulating a consumer whose result set is now full
	// of higher-boost hits.
	floor.Set(0.99)

	found := map[string]bool{"pr0gramming": true}
	for e.Next() {
		found[string(e.Term())] = true
	}
	if !found["programming"] {
		t.Error("exact match should still be found after the floor rises")
	}
}

func TestAdaptiveFuzzyEnumerator_SwapsToLinearBeyondAutomatonBudget(t *testing.T) {
	p, _ := NewPattern("abcdefghijklmnop") // len 16
	c, _ := NewSimilarityConfig(p, 0.3, 0) // maxEdits 11, far beyond automaton.MaxEditDistance
	dict := termdict.NewSliceDictionary([]string{"abcdefghijklmnop", "abcdefghijklmnoq"})

	e := NewAdaptiveFuzzyEnumerator(c, dict.Cursor(), nil)
	if !e.Next() {
		t.Fatal("expected a match")
	}
	if e.ActiveEdits() <= 2 {
		t.Errorf("ActiveEdits() = %d, should exceed the automaton's cap of 2 to require the linear matcher", e.ActiveEdits())
	}
}

func TestAdaptiveFuzzyEnumerator_SwapResumesAtFirstTermAfterKey(t *testing.T) {
	// Sorted order is hallo < hello < hellp. The swap triggered below
	// must resume exactly at "hello", the term immediately after the
	// resume key "hallo" — not skip over it to "hellp".
	p, _ := NewPattern("hello")
	c, _ := NewSimilarityConfig(p, 0.0, 0)
	dict := termdict.NewSliceDictionary([]string{"hallo", "hello", "hellp"})
	floor := termdict.NewCompetitiveFloor(0)

	e := NewAdaptiveFuzzyEnumerator(c, dict.Cursor(), floor)

	if !e.Next() {
		t.Fatal("expected a match")
	}
	if string(e.Term()) != "hallo" {
		t.Fatalf("first match = %q, want hallo", e.Term())
	}

	// Narrows the budget from 5 to 1, forcing a swap to the automaton ladder.
	floor.Set(0.7)

	if !e.Next() {
		t.Fatal("expected a second match after narrowing")
	}
	if string(e.Term()) != "hello" {
		t.Fatalf("second match = %q, want hello (the exact match right after the resume key), not hellp", e.Term())
	}
	if e.Distance() != 0 || e.Boost() != 1 {
		t.Errorf("hello should match exactly: distance=%d boost=%v", e.Distance(), e.Boost())
	}
}

func TestAdaptiveFuzzyEnumerator_FloorDropAfterNarrowingNeverWidens(t *testing.T) {
	p, _ := NewPattern("hello")
	c, _ := NewSimilarityConfig(p, 0.0, 0)
	dict := termdict.NewSliceDictionary([]string{"hallo", "hello", "hellp"})
	floor := termdict.NewCompetitiveFloor(0)

	e := NewAdaptiveFuzzyEnumerator(c, dict.Cursor(), floor)

	if !e.Next() {
		t.Fatal("expected a match")
	}
	floor.Set(0.99) // narrows the budget to 0
	if !e.Next() {
		t.Fatal("expected a match after narrowing")
	}
	narrowed := e.ActiveEdits()
	if narrowed != 0 {
		t.Fatalf("ActiveEdits() = %d after narrowing, want 0", narrowed)
	}

	floor.Set(0) // drop back down; must not re-widen past the installed budget
	if e.Next() && string(e.Term()) == "hellp" {
		t.Error("hellp has distance 1 from \"hello\" and must not reappear once the budget narrowed to 0")
	}
	if e.ActiveEdits() > narrowed {
		t.Errorf("ActiveEdits() = %d after floor dropped, want <= %d (monotonic non-increasing)", e.ActiveEdits(), narrowed)
	}
}

func TestAdaptiveFuzzyEnumerator_EmitCopiesTerm(t *testing.T) {
	p, _ := NewPattern("hello")
	c, _ := NewSimilarityConfig(p, 0.3, 0)
	dict := termdict.NewSliceDictionary([]string{"hello"})
	e := NewAdaptiveFuzzyEnumerator(c, dict.Cursor(), nil)

	if !e.Next() {
		t.Fatal("expected a match")
	}
	rec := e.Emit()
	if string(rec.Term) != "hello" || rec.Boost != 1 || rec.Distance != 0 {
		t.Errorf("Emit() = %+v, want {hello 1 0}", rec)
	}
}
