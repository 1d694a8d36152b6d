package clones

import "github.com/ets-tools/arklint/pkg/lexer"

// Matcher accumulates window hashes from every processed file into one
// shared index, enabling cross-file and cross-method matches.
type Matcher struct {
	windowSize int
	index      *Index
}

// NewMatcher creates a matcher with a fixed window size.
func NewMatcher(windowSize int) *Matcher {
	return &Matcher{
		windowSize: windowSize,
		index:      NewIndex(),
	}
}

// WindowSize returns the matcher's fixed window size.
func (m *Matcher) WindowSize() int {
	return m.windowSize
}

// ProcessFile hashes every sliding window of the file's token stream into
// the shared index. A file shorter than the window size contributes zero
// windows and is silently skipped.
func (m *Matcher) ProcessFile(tokens []lexer.Token, file string) {
	for _, w := range SlidingWindows(tokens, m.windowSize) {
		m.index.Add(WindowHash(w.Tokens), FragmentLocation{
			File:       file,
			StartIndex: w.StartIndex,
			StartLine:  w.StartLine,
			EndLine:    w.EndLine,
		})
	}
}

// Matches returns all duplicate hash groups found so far.
func (m *Matcher) Matches() []DuplicateGroup {
	return m.index.Duplicates()
}

// ClonePairs explodes every duplicate group of size n into all n choose 2
// unordered pairs. Pairing uses i < j, so no pair is emitted twice.
func (m *Matcher) ClonePairs() []ClonePair {
	var pairs []ClonePair
	for _, group := range m.Matches() {
		for i := 0; i < len(group.Locations); i++ {
			for j := i + 1; j < len(group.Locations); j++ {
				pairs = append(pairs, ClonePair{
					Location1:  group.Locations[i],
					Location2:  group.Locations[j],
					TokenCount: m.windowSize,
				})
			}
		}
	}
	return pairs
}

// IndexSize returns the number of distinct hashes in the index.
func (m *Matcher) IndexSize() int {
	return m.index.Size()
}

// Clear resets the shared index.
func (m *Matcher) Clear() {
	m.index.Clear()
}
