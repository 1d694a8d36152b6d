package clones

import (
	"testing"
)

func TestHashKnownValues(t *testing.T) {
	// h = (h << 5) - h + c over int32, rendered as lowercase hex of the
	// unsigned value.
	tests := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"a", "61"},  // 'a' = 97
		{"ab", "c21"}, // 97*31 + 98 = 3105
	}
	for _, tt := range tests {
		if got := Hash(tt.in); got != tt.want {
			t.Errorf("Hash(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHashDeterministicAndDiscriminating(t *testing.T) {
	if Hash("let x = 1;") != Hash("let x = 1;") {
		t.Error("same input must hash identically")
	}
	if Hash("let x = 1;") == Hash("let x = 2;") {
		t.Error("different inputs should hash differently here")
	}
}

func TestHashWrapsToUnsignedHex(t *testing.T) {
	// Long inputs overflow int32; the rendering must stay within uint32.
	h := Hash("some reasonably long input that certainly overflows the accumulator")
	if len(h) > 8 {
		t.Errorf("hash %q longer than 8 hex digits", h)
	}
}

func TestWindowHashSeparatorPreventsJoinCollisions(t *testing.T) {
	a := WindowHash(makeTokens("ab", "c"))
	b := WindowHash(makeTokens("a", "bc"))
	if a == b {
		t.Error("token boundaries must affect the hash")
	}
}

func TestWindowHashIgnoresPosition(t *testing.T) {
	first := makeTokens("let", "x", "=", "1")
	second := makeTokens("let", "x", "=", "1")
	for i := range second {
		second[i].Line += 40
		second[i].File = "other.ets"
	}
	if WindowHash(first) != WindowHash(second) {
		t.Error("hash must depend on values only")
	}
}

func TestIndexAddGet(t *testing.T) {
	ix := NewIndex()
	loc := FragmentLocation{File: "a.ets", StartIndex: 0, StartLine: 1, EndLine: 3}
	ix.Add("h1", loc)

	got := ix.Get("h1")
	if len(got) != 1 || got[0] != loc {
		t.Errorf("Get(h1) = %v", got)
	}
	if ix.Get("missing") != nil {
		t.Error("missing hash should return nil")
	}
	if ix.Size() != 1 {
		t.Errorf("Size = %d", ix.Size())
	}
}

func TestIndexDuplicatesInsertionOrder(t *testing.T) {
	ix := NewIndex()
	ix.Add("only", FragmentLocation{File: "a.ets"})
	ix.Add("second", FragmentLocation{File: "a.ets", StartIndex: 1})
	ix.Add("first", FragmentLocation{File: "a.ets", StartIndex: 2})
	ix.Add("second", FragmentLocation{File: "b.ets", StartIndex: 3})
	ix.Add("first", FragmentLocation{File: "b.ets", StartIndex: 4})

	groups := ix.Duplicates()
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	// "second" was inserted before "first".
	if groups[0].Hash != "second" || groups[1].Hash != "first" {
		t.Errorf("group order = %q, %q", groups[0].Hash, groups[1].Hash)
	}
	if len(groups[0].Locations) != 2 {
		t.Errorf("group size = %d", len(groups[0].Locations))
	}
}

func TestIndexClear(t *testing.T) {
	ix := NewIndex()
	ix.Add("h", FragmentLocation{File: "a.ets"})
	ix.Clear()
	if ix.Size() != 0 || ix.Duplicates() != nil {
		t.Error("Clear should empty the index")
	}
}

func TestMatcherFindsRepeatedWindow(t *testing.T) {
	// a b c d a b c e: "a b c" repeats at offsets 0 and 4.
	m := NewMatcher(3)
	m.ProcessFile(makeTokens("a", "b", "c", "d", "a", "b", "c", "e"), "f.ets")

	groups := m.Matches()
	if len(groups) != 1 {
		t.Fatalf("got %d duplicate groups, want 1", len(groups))
	}
	locs := groups[0].Locations
	if len(locs) != 2 || locs[0].StartIndex != 0 || locs[1].StartIndex != 4 {
		t.Errorf("locations = %v", locs)
	}

	pairs := m.ClonePairs()
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].TokenCount != 3 {
		t.Errorf("TokenCount = %d, want window size", pairs[0].TokenCount)
	}
}

func TestMatcherCrossFile(t *testing.T) {
	m := NewMatcher(3)
	m.ProcessFile(makeTokens("x", "y", "z"), "a.ets")
	m.ProcessFile(makeTokens("x", "y", "z"), "b.ets")

	pairs := m.ClonePairs()
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].Location1.File != "a.ets" || pairs[0].Location2.File != "b.ets" {
		t.Errorf("pair = %+v", pairs[0])
	}
}

func TestMatcherGroupExplosion(t *testing.T) {
	// Three copies yield 3 choose 2 = 3 pairs.
	m := NewMatcher(2)
	m.ProcessFile(makeTokens("p", "q"), "a.ets")
	m.ProcessFile(makeTokens("p", "q"), "b.ets")
	m.ProcessFile(makeTokens("p", "q"), "c.ets")

	if pairs := m.ClonePairs(); len(pairs) != 3 {
		t.Errorf("got %d pairs, want 3", len(pairs))
	}
}

func TestMatcherShortFileSkipped(t *testing.T) {
	m := NewMatcher(5)
	m.ProcessFile(makeTokens("a", "b"), "a.ets")
	if m.IndexSize() != 0 {
		t.Error("short file must contribute no windows")
	}
}
