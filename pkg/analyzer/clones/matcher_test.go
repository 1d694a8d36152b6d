package clones

import "testing"

func TestMatcherFindsCrossFileMatch(t *testing.T) {
	m := NewMatcher(3)
	m.ProcessFile(makeTokens("a", "b", "c"), "one.ets")
	m.ProcessFile(makeTokens("a", "b", "c"), "two.ets")

	matches := m.Matches()
	if len(matches) != 1 {
		t.Fatalf("got %d duplicate groups, want 1", len(matches))
	}
	if len(matches[0].Locations) != 2 {
		t.Errorf("group has %d locations", len(matches[0].Locations))
	}

	pairs := m.ClonePairs()
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	p := pairs[0]
	if p.TokenCount != 3 {
		t.Errorf("TokenCount = %d", p.TokenCount)
	}
	if p.Location1.File == p.Location2.File {
		t.Errorf("pair sides should span both files: %+v", p)
	}
}

func TestMatcherSkipsShortFiles(t *testing.T) {
	m := NewMatcher(5)
	m.ProcessFile(makeTokens("a", "b"), "short.ets")

	if m.IndexSize() != 0 {
		t.Errorf("IndexSize = %d, want 0", m.IndexSize())
	}
	if pairs := m.ClonePairs(); pairs != nil {
		t.Errorf("got %+v", pairs)
	}
}

func TestMatcherPairExplosion(t *testing.T) {
	// Four copies of the same window yield C(4,2) = 6 pairs.
	m := NewMatcher(3)
	for _, f := range []string{"a.ets", "b.ets", "c.ets", "d.ets"} {
		m.ProcessFile(makeTokens("x", "y", "z"), f)
	}

	pairs := m.ClonePairs()
	if len(pairs) != 6 {
		t.Fatalf("got %d pairs, want 6", len(pairs))
	}

	seen := make(map[string]bool)
	for _, p := range pairs {
		key := p.Location1.File + "|" + p.Location2.File
		if seen[key] {
			t.Errorf("duplicate pair %s", key)
		}
		seen[key] = true
	}
}

func TestMatcherDistinguishesDifferentContent(t *testing.T) {
	m := NewMatcher(3)
	m.ProcessFile(makeTokens("a", "b", "c"), "one.ets")
	m.ProcessFile(makeTokens("a", "b", "d"), "two.ets")

	if matches := m.Matches(); len(matches) != 0 {
		t.Errorf("differing windows must not group: %+v", matches)
	}
}

func TestMatcherClear(t *testing.T) {
	m := NewMatcher(3)
	m.ProcessFile(makeTokens("a", "b", "c"), "one.ets")
	if m.IndexSize() == 0 {
		t.Fatal("index should hold the processed window")
	}

	m.Clear()
	if m.IndexSize() != 0 {
		t.Errorf("IndexSize after Clear = %d", m.IndexSize())
	}
	if pairs := m.ClonePairs(); pairs != nil {
		t.Errorf("pairs after Clear = %+v", pairs)
	}
}
